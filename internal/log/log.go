// Package log is the debug file logger for rounds.
// Nothing is written unless --debug or ROUNDS_DEBUG turns it on; entries
// carry a level, a category and key=value fields. Values of credential
// fields (tokens, passwords, one-time codes) never reach the file.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Category groups related log messages.
type Category string

const (
	CatAPI     Category = "api"     // Hospital backend requests
	CatUI      Category = "ui"      // UI component updates
	CatMode    Category = "mode"    // Mode transitions (register, dashboard)
	CatConfig  Category = "config"  // Configuration loading/saving
	CatDB      Category = "db"      // Database operations
	CatCache   Category = "cache"   // cache operations
	CatSession Category = "session" // Session token handling
	CatTrace   Category = "trace"   // Tracing setup and export
)

// redacted replaces the value of any field whose key is listed here.
var redacted = map[string]bool{
	"token":       true,
	"doctortoken": true,
	"password":    true,
	"otp":         true,
}

type logger struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel Level
	now      func() time.Time
}

var (
	globalMu sync.RWMutex
	global   *logger
)

func install(w io.Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if w == nil {
		global = nil
		return
	}
	global = &logger{w: w, minLevel: LevelDebug, now: time.Now}
}

func current() *logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// InitWithTeaLog opens path through tea.LogToFile, so bubbletea's own
// log calls land in the same file. The returned func closes it.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	install(f)
	return func() {
		install(nil)
		_ = f.Close()
	}, nil
}

// SetOutput routes log output to w. Passing nil disables the logger.
func SetOutput(w io.Writer) { install(w) }

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any)  { write(LevelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any)  { write(LevelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	value := "<nil>"
	if err != nil {
		value = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", value))
}

func write(level Level, cat Category, msg string, fields []any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	// 2026-01-02T15:04:05 [ERROR] [api] message key=value key2=value2
	var b strings.Builder
	b.WriteString(l.now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %s=<missing>", key)
			break
		}
		if redacted[strings.ToLower(key)] {
			fmt.Fprintf(&b, " %s=[redacted]", key)
			continue
		}
		fmt.Fprintf(&b, " %s=%v", key, fields[i+1])
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.w, b.String())
}
