package slhdsa

import (
	"fmt"
	goLog "log"
)

// Error is the error type returned by this package's fallible operations.
type Error interface {
	error
	Inner() error
}

type errorImpl struct {
	msg   string
	inner error
}

func (err *errorImpl) Inner() error { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.inner.Error())
	}
	return err.msg
}

// Formats a new Error.
func errorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...)}
}

// Formats a new Error that wraps another.
func wrapErrorf(err error, format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), inner: err}
}

// badRandomness wraps an rbg failure (§7 BadRandomness). Keygen and Sign
// propagate it unchanged rather than retrying or recovering locally.
func badRandomness(err error) *errorImpl {
	return wrapErrorf(err, "random byte source failed")
}

type dummyLogger struct{}
type stdlibLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = &dummyLogger{}

// Logger receives optional diagnostic trace output from Sign and Verify.
// Disabled (dummyLogger) by default; it never affects the signing or
// verification result and never branches on secret data.
type Logger interface {
	Logf(format string, a ...interface{})
}

// EnableLogging enables logging to the standard log package. For more
// flexibility, see SetLogger.
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// SetLogger installs logger as the destination for diagnostic trace output.
// Passing nil disables logging.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
