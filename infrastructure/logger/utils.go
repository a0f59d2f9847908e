package logger

import (
	"time"
)

// LogAndMeasureExecutionTime writes a debug entry marking the start of
// functionName. Calling the returned onEnd writes a second entry with the
// time elapsed since then, so callers usually defer it.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	if log.Level() > LevelDebug {
		return func() {}
	}
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}
