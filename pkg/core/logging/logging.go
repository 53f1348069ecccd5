// Package logging is the leveled diagnostic logger used by the engine and
// the driver. It never writes to the simulated terminal: user-visible text
// travels in core.Result.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
)

// Level orders messages by verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = map[Level]string{
	LevelError: "ERROR",
	LevelWarn:  "WARN",
	LevelInfo:  "INFO",
	LevelDebug: "DEBUG",
	LevelTrace: "TRACE",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts a level name in any case. Unknown names yield INFO and
// ok=false.
func ParseLevel(name string) (Level, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for lvl, n := range levelNames {
		if n == name {
			return lvl, true
		}
	}
	return LevelInfo, false
}

// Logger writes "[LEVEL] message" lines through a standard log.Logger.
type Logger struct {
	mu     *sync.RWMutex
	level  *Level
	prefix string
	logger *log.Logger
}

// New returns a logger writing to w at INFO.
func New(w io.Writer, prefix string) *Logger {
	lvl := LevelInfo
	return &Logger{
		mu:     &sync.RWMutex{},
		level:  &lvl,
		prefix: prefix,
		logger: log.New(w, prefix+": ", log.Ldate|log.Ltime|log.Lmicroseconds|log.LUTC),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l := New(io.Discard, "shellsim")
	l.SetLevel(LevelError)
	return l
}

// SetLevel changes the threshold for l and every logger derived from it.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.level = level
}

func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return *l.level
}

func (l *Logger) enabled(level Level) bool {
	return level <= l.Level()
}

func (l *Logger) output(level Level, format string, args ...any) {
	if l == nil || !l.enabled(level) {
		return
	}
	_ = l.logger.Output(3, fmt.Sprintf("[%s] %s", levelNames[level], fmt.Sprintf(format, args...)))
}

func (l *Logger) Error(format string, args ...any) { l.output(LevelError, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.output(LevelWarn, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.output(LevelInfo, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.output(LevelDebug, format, args...) }
func (l *Logger) Trace(format string, args ...any) { l.output(LevelTrace, format, args...) }

// WithPrefix derives a logger that shares l's sink and level but tags lines
// with prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	full := l.prefix + "/" + prefix
	return &Logger{
		mu:     l.mu,
		level:  l.level,
		prefix: full,
		logger: log.New(l.logger.Writer(), full+": ", l.logger.Flags()),
	}
}
