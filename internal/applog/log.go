// Package applog initializes the stdlib logger used across the CLI and
// batch runner.
package applog

import (
	"log"
	"os"
)

// levelOrder maps the config log levels to a minimum-severity rank. Only
// levels at or above the configured level are printed.
var levelOrder = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

var minLevel = 1 // info, until Init says otherwise

// Init sets the stdlib logger's output and flags and records the minimum
// level to print. An unrecognized level falls back to "info".
func Init(level string) {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if rank, ok := levelOrder[level]; ok {
		minLevel = rank
	} else {
		minLevel = levelOrder["info"]
	}
}

func logf(level string, format string, args ...any) {
	if levelOrder[level] < minLevel {
		return
	}
	log.Printf("["+level+"] "+format, args...)
}

func Debugf(format string, args ...any) { logf("debug", format, args...) }
func Infof(format string, args ...any)  { logf("info", format, args...) }
func Warnf(format string, args ...any)  { logf("warn", format, args...) }
func Errorf(format string, args ...any) { logf("error", format, args...) }
