// Package logger provides the process-wide console logger.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

var instance = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// Init sets the log level. Call once from main before any logging.
func Init(debug bool) {
	if debug {
		instance.SetLevel(log.DebugLevel)
	}
}

func Debug(message string, keyvals ...any) {
	instance.Debug(message, keyvals...)
}

func Info(message string, keyvals ...any) {
	instance.Info(message, keyvals...)
}

func Warn(message string, keyvals ...any) {
	instance.Warn(message, keyvals...)
}

func Error(message string, keyvals ...any) {
	instance.Error(message, keyvals...)
}

func Fatal(message string, keyvals ...any) {
	instance.Fatal(message, keyvals...)
}
