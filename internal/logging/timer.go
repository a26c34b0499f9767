package logging

import "time"

// Timer logs how long an operation took.
type Timer struct {
	operation string
	start     time.Time
	logger    TargetLogger
}

// Stop stops the timer and logs the elapsed time
func (t *Timer) Stop() time.Duration {
	elapsed := t.logger.base().clock().Sub(t.start)
	t.logger.Info("%s completed in %v", t.operation, elapsed)
	return elapsed
}

// StopWithResult stops the timer and logs the result
func (t *Timer) StopWithResult(success bool, detail string) time.Duration {
	elapsed := t.logger.base().clock().Sub(t.start)
	status := "completed"
	level := LevelInfo
	if !success {
		status = "failed"
		level = LevelWarn
	}
	l := t.logger.base()
	if detail != "" {
		l.Logf(t.logger.target, level, "%s %s in %v: %s", t.operation, status, elapsed, detail)
	} else {
		l.Logf(t.logger.target, level, "%s %s in %v", t.operation, status, elapsed)
	}
	return elapsed
}
