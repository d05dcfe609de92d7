package users

import (
	"fmt"
	"strings"
)

// Logger is the minimal logging surface the package needs. Calls follow the
// slog convention: a message followed by alternating key-value pairs. glog
// loggers from github.com/goliatone/go-logger satisfy it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds service options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetTokenTTL() int
	GetListenAddress() string
	GetAdminEmail() string
	GetAdminPassword() string
	GetAllowedOrigins() string
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println(logLine("ERR", msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println(logLine("WRN", msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println(logLine("INF", msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println(logLine("DBG", msg, args))
}

// logLine renders the slog-style trailing pairs as key=value fields. A
// dangling key without a value is printed bare.
func logLine(level, msg string, args []any) string {
	var b strings.Builder
	b.WriteString("[" + level + "] USERS " + msg)

	i := 0
	for ; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if i < len(args) {
		fmt.Fprintf(&b, " %v", args[i])
	}

	return b.String()
}
