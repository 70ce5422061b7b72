package robustness

import (
	"time"

	"robustscan/internal/network"

	log "github.com/sirupsen/logrus"
)

// Invoke submits the assembled network to its engine. It blocks for at most
// the configured timeout. A timeout is reported through the statistics, an
// abnormal termination as *EngineError.
func Invoke(net network.Network, options network.SolveOptions) (network.Result, error) {
	if options.Timeout <= 0 {
		options.Timeout = network.DefaultTimeout
	}
	startTime := time.Now()
	result, err := net.Solve(options)
	solveDuration.Observe(time.Since(startTime).Seconds())
	if err != nil {
		log.Errorf("solve: %v", err)
		return network.Result{Status: network.StatusError, Reason: err.Error()}, &EngineError{Err: err}
	}
	log.Debugf("solve status %s, witness size %d, timed out %v, elapsed %s",
		result.Status, len(result.Witness), result.Stats.TimedOut, result.Stats.Elapsed)
	return result, nil
}
