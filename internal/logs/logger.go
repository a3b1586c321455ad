package logs

import (
	"sync"
	"time"
)

type Level string

const (
	DEBUG Level = "DEBUG"
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
)

var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

// Entry is one log line kept in memory for the admin console.
// Component separates "cannot assess" collector notes from recorder
// and persistence failures.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Component string    `json:"component"`
	Message   string    `json:"message"`
}

// Logger is a bounded in-memory ring of log entries. The audit engine
// surfaces its recent log tail through the admin API, so entries must
// stay queryable in-process.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	level   Level
}

func NewLogger(maxSize int, level Level) *Logger {
	return &Logger{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
		level:   level,
	}
}

func (l *Logger) log(level Level, component, msg string) {
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.maxSize {
		l.entries = l.entries[1:]
	}

	l.entries = append(l.entries, Entry{
		Timestamp: time.Now(),
		Level:     level,
		Component: component,
		Message:   msg,
	})
}

func (l *Logger) Debug(component, msg string) { l.log(DEBUG, component, msg) }
func (l *Logger) Info(component, msg string)  { l.log(INFO, component, msg) }
func (l *Logger) Warn(component, msg string)  { l.log(WARN, component, msg) }
func (l *Logger) Error(component, msg string) { l.log(ERROR, component, msg) }

// GetLast returns up to n most recent entries, oldest first.
func (l *Logger) GetLast(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	start := len(l.entries) - n
	out := make([]Entry, n)
	copy(out, l.entries[start:])
	return out
}
