package logger

import "log"

// A LoggerOptFn is a functional option configuring a TrellisLogger when constructing a new one.
type LoggerOptFn func(*TrellisLogger)

// WithEnv sets the environment TrellisLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *TrellisLogger) {
		l.env = env
	}
}

// WithLevel sets the log level TrellisLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *TrellisLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger TrellisLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *TrellisLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *TrellisLogger) {
		l.skip = skip
	}
}
