// Package log provides logging utilities including colored console output
// and connection logging capabilities.
package log

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

// ErrorMsg prints an error message to stderr in red color.
func ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// Logger writes colored messages and drops verbose ones unless enabled.
// A nil *Logger discards everything.
type Logger struct {
	verbose bool
	out     io.Writer
}

// NewLogger returns a Logger writing to stderr.
func NewLogger(verbose bool) *Logger {
	return &Logger{verbose: verbose, out: os.Stderr}
}

// NewLoggerTo returns a Logger writing to w.
func NewLoggerTo(w io.Writer, verbose bool) *Logger {
	return &Logger{verbose: verbose, out: w}
}

// ErrorMsg ...
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	if l == nil {
		return
	}
	red(l.out, "[!] Error: "+format+"\n", a...)
}

// InfoMsg ...
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	if l == nil {
		return
	}
	blue(l.out, "[+] "+format+"\n", a...)
}

// VerboseMsg prints only when the logger is verbose.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	yellow(l.out, "[v] "+format+"\n", a...)
}

// Verbose ...
func (l *Logger) Verbose() bool {
	return l != nil && l.verbose
}
