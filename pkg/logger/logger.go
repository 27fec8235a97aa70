package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Minimal leveled logger shared by the portfolio service.
// - zero external deps
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	out    *log.Logger = log.New(os.Stdout, "", 0)
	minLvl Level       = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		minLvl = LevelDebug
	case "warn", "warning":
		minLvl = LevelWarn
	case "error":
		minLvl = LevelError
	case "fatal":
		minLvl = LevelFatal
	default:
		minLvl = LevelInfo
	}
}

func header(lvl string) string {
	return fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(lvl))
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= minLvl
}

func Debugf(format string, v ...interface{}) {
	if !enabled(LevelDebug) {
		return
	}
	out.Printf(header("debug")+format, v...)
}

func Infof(format string, v ...interface{}) {
	if !enabled(LevelInfo) {
		return
	}
	out.Printf(header("info")+format, v...)
}

func Warnf(format string, v ...interface{}) {
	if !enabled(LevelWarn) {
		return
	}
	out.Printf(header("warn")+format, v...)
}

func Errorf(format string, v ...interface{}) {
	if !enabled(LevelError) {
		return
	}
	out.Printf(header("error")+format, v...)
}

func Fatalf(format string, v ...interface{}) {
	out.Printf(header("fatal")+format, v...)
	os.Exit(1)
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch minLvl {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
