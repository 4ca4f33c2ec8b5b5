// Package logging is a small level-gated logger, in the style of the
// package-level loggers used across this codebase's ancestry rather than
// a full structured-logging library — this analyser has exactly four
// message kinds and no log aggregation to feed.
package logging

import (
	"fmt"
	"io"
	"os"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var (
	currentLevel = Info
	out          io.Writer = os.Stderr
)

// SetLevel changes the minimum level that gets written.
func SetLevel(l Level) { currentLevel = l }

// SetOutput redirects log output, mainly so tests can capture it.
func SetOutput(w io.Writer) { out = w }

// IsVerbose reports whether Debug-level messages are currently emitted.
func IsVerbose() bool { return currentLevel <= Debug }

func Debugf(format string, args ...any) {
	if currentLevel <= Debug {
		fmt.Fprintf(out, "[DEBUG] "+format+"\n", args...)
	}
}

func Infof(format string, args ...any) {
	if currentLevel <= Info {
		fmt.Fprintf(out, format+"\n", args...)
	}
}

func Warnf(format string, args ...any) {
	if currentLevel <= Warn {
		fmt.Fprintf(out, "[WARN] "+format+"\n", args...)
	}
}

func Errorf(format string, args ...any) {
	if currentLevel <= Error {
		fmt.Fprintf(out, "[ERROR] "+format+"\n", args...)
	}
}
