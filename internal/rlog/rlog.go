// Package rlog provides the ambient logging surface shared by every
// solver package. It never owns a global logger: callers that need
// visibility pass a *logrus.Entry through their options struct, the
// way gofem's Domain carries Verbose/ShowMsg rather than reaching for
// a package-level logger.
package rlog

import "github.com/sirupsen/logrus"

// Nop is a no-op entry used when a caller passes nil.
var Nop = logrus.NewEntry(func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discard{})
	return l
}())

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Or returns e if non-nil, else the no-op entry.
func Or(e *logrus.Entry) *logrus.Entry {
	if e == nil {
		return Nop
	}
	return e
}

// New builds a text-formatted logger at the given level, for use by
// cmd/propelleval and by tests that want to see solver trace output.
func New(level logrus.Level) *logrus.Entry {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logrus.NewEntry(l)
}
