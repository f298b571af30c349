package logger

import (
	"time"
)

// LogAndMeasureExecutionTime logs functionName at debug level when called
// and again, with the elapsed time, when the returned function is called.
//
//	defer logger.LogAndMeasureExecutionTime(log, "Verify")()
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}
