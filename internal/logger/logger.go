package logger

import (
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// Logger is a leveled key-value logger that redacts account identifiers
// before they reach the diagnostic output. Read failures in the wardrobe
// store are logged here instead of being surfaced to the user, so this is
// the channel that ends up holding emails and user ids.
type Logger struct {
	mu     sync.RWMutex
	level  LogLevel
	logger *log.Logger
	isDev  bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Initialize sets up the default logger instance.
func Initialize(level LogLevel, isDev bool) {
	once.Do(func() {
		defaultLogger = &Logger{
			level:  level,
			logger: log.New(os.Stdout, "", log.LstdFlags),
			isDev:  isDev,
		}
	})
}

// GetLogger returns the default logger instance.
func GetLogger() *Logger {
	if defaultLogger == nil {
		Initialize(INFO, false)
	}
	return defaultLogger
}

func redactEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return "****"
	}
	local, domain := email[:at], email[at+1:]
	if len(local) <= 2 {
		return "****@" + domain
	}
	return local[:1] + "****" + local[len(local)-1:] + "@" + domain
}

func hashUserID(userID interface{}) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v", userID)))
	return fmt.Sprintf("user_%x", sum[:4])
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:4] + "****"
}

// redactValue decides how to mask a value from its key name. Values that
// look like emails are masked regardless of key.
func redactValue(key string, value interface{}) interface{} {
	k := strings.ToLower(key)
	v := fmt.Sprintf("%v", value)

	switch {
	case strings.Contains(k, "password"):
		return "[REDACTED]"
	case strings.Contains(k, "email") || strings.Contains(v, "@"):
		return redactEmail(v)
	case strings.Contains(k, "userid") || strings.Contains(k, "user_id"):
		return hashUserID(value)
	case strings.Contains(k, "session") || strings.Contains(k, "token"):
		return truncateID(v)
	}
	return value
}

func (l *Logger) formatMessage(level LogLevel, msg string, keysAndValues ...interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", levelNames[level], msg)

	if len(keysAndValues) == 0 {
		return b.String()
	}

	b.WriteString(" {")
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			b.WriteString(",")
		}
		key := fmt.Sprintf("%v", keysAndValues[i])
		var value interface{}
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		} else {
			value = ""
		}
		// Redaction stays on outside of dev-mode debugging.
		if !l.isDev || l.level > DEBUG {
			value = redactValue(key, value)
		}
		fmt.Fprintf(&b, " %s=%v", key, value)
	}
	b.WriteString(" }")
	return b.String()
}

func (l *Logger) shouldLog(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *Logger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	if l.shouldLog(level) {
		l.logger.Println(l.formatMessage(level, msg, keysAndValues...))
	}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(DEBUG, msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(INFO, msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(WARN, msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(ERROR, msg, keysAndValues...)
}

// Package-level convenience functions using the default logger.

func Debug(msg string, keysAndValues ...interface{}) {
	GetLogger().Debug(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	GetLogger().Info(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	GetLogger().Warn(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	GetLogger().Error(msg, keysAndValues...)
}

// ParseLevel converts a string to a LogLevel.
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}
