// Package logger derives std log.Logger instances, so each component
// can write under its own prefix without sharing mutable state.
package logger

import "log"

type Option func(*log.Logger) *log.Logger

// By applies options to a logger, left to right, and returns the result.
func By(l *log.Logger, opt ...Option) *log.Logger {
	for _, o := range opt {
		l = o(l)
	}
	return l
}

// Copied returns an Option which clones the logger,
// so that later options do not touch the original.
func Copied() Option {
	return func(l *log.Logger) *log.Logger {
		return log.New(l.Writer(), l.Prefix(), l.Flags())
	}
}

func WithPrefix(pre string) Option {
	return func(l *log.Logger) *log.Logger {
		l.SetPrefix(pre)
		return l
	}
}

func WithTimestamp() Option {
	return func(l *log.Logger) *log.Logger {
		l.SetFlags(l.Flags() | log.Ldate | log.Ltime | log.Lmicroseconds)
		return l
	}
}
