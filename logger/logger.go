package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const TIME_FORMAT = "2006-01-02T15:04:05.000Z07:00"

var once sync.Once
var Log zerolog.Logger

func configureLogger(logFile io.Writer) {
	zerolog.TimeFieldFormat = TIME_FORMAT

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: TIME_FORMAT,
	}

	/*
	 * Every line goes to the console and, when given, to the log file
	 */
	if logFile != nil {
		output = zerolog.MultiLevelWriter(output, logFile)
	}

	Log = zerolog.New(output).With().Timestamp().Logger()
}

func GetLoggerConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(func() {
		configureLogger(nil)
	})
	zerolog.SetGlobalLevel(level)
	return &Log
}

func GetLogger() *zerolog.Logger {
	once.Do(func() {
		configureLogger(nil)
	})
	return &Log
}

/*
 * Rebuilds the shared logger with a file sink. Packages holding the pointer from
 * GetLogger see the new configuration. Call before any worker goroutine starts.
 */
func Configure(level zerolog.Level, logFile io.Writer) *zerolog.Logger {
	once.Do(func() {})
	configureLogger(logFile)
	zerolog.SetGlobalLevel(level)
	return &Log
}

func OpenLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
}
