package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

var (
	// IsEnabled controls whether messages are output
	IsEnabled bool
	// CurrentLevel is the minimum level of messages to output
	CurrentLevel LogLevel

	mu         sync.RWMutex
	logger     = log.New(os.Stdout, "", 0)
	levelNames = map[LogLevel]string{
		LevelDebug:   "DEBUG",
		LevelInfo:    "INFO",
		LevelWarning: "WARNING",
		LevelError:   "ERROR",
	}
	levelMap = map[string]LogLevel{
		"DEBUG":   LevelDebug,
		"INFO":    LevelInfo,
		"WARNING": LevelWarning,
		"WARN":    LevelWarning,
		"ERROR":   LevelError,
	}
)

func init() {
	Reinitialize()
}

// Init points the logger at w and forces logging on or off, ignoring DEBUG.
// LOG_LEVEL is still honoured.
func Init(w io.Writer, enabled bool) {
	mu.Lock()
	logger = log.New(w, "", 0)
	IsEnabled = enabled
	CurrentLevel = ParseLevel(os.Getenv("LOG_LEVEL"))
	mu.Unlock()
}

// Reinitialize updates the settings from the current environment. Call it
// again after loading a .env file.
func Reinitialize() {
	debugEnv := os.Getenv("DEBUG")

	mu.Lock()
	IsEnabled = debugEnv == "true" || debugEnv == "1"
	CurrentLevel = ParseLevel(os.Getenv("LOG_LEVEL"))
	mu.Unlock()

	if IsEnabled {
		Info("Debug logging initialized - Enabled: %v, Level: %s", IsEnabled, levelNames[CurrentLevel])
	}
}

// ParseLevel maps a level name to a LogLevel, defaulting to INFO.
func ParseLevel(name string) LogLevel {
	if level, ok := levelMap[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return level
	}
	return LevelInfo
}

func write(level LogLevel, skip int, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	if !IsEnabled || level < CurrentLevel {
		return
	}

	funcName := "unknown"
	pc, file, line, ok := runtime.Caller(skip)
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
		}
	}

	logger.Printf("[%s] [%s] [%s:%d] [%s] %s\n",
		levelNames[level],
		time.Now().Format("2006-01-02 15:04:05.000"),
		file,
		line,
		funcName,
		fmt.Sprintf(format, v...),
	)
}

// Debug logs a debug level message
func Debug(format string, v ...interface{}) {
	write(LevelDebug, 2, format, v...)
}

// Info logs an info level message
func Info(format string, v ...interface{}) {
	write(LevelInfo, 2, format, v...)
}

// Warning logs a warning level message
func Warning(format string, v ...interface{}) {
	write(LevelWarning, 2, format, v...)
}

// Error logs an error level message
func Error(format string, v ...interface{}) {
	write(LevelError, 2, format, v...)
}

// Fatal logs an error level message regardless of settings and exits.
func Fatal(format string, v ...interface{}) {
	mu.Lock()
	IsEnabled = true
	mu.Unlock()
	write(LevelError, 2, format, v...)
	os.Exit(1)
}
