package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLine(t *testing.T) {
	t.Run("renders trailing pairs as key=value", func(t *testing.T) {
		got := logLine("INF", "User signed in", []any{"email", "jane@example.com", "attempt", 2})

		assert.Equal(t, "[INF] USERS User signed in email=jane@example.com attempt=2", got)
	})

	t.Run("a message without pairs stays plain", func(t *testing.T) {
		got := logLine("WRN", "Shutting down", nil)

		assert.Equal(t, "[WRN] USERS Shutting down", got)
	})

	t.Run("a dangling key is printed bare", func(t *testing.T) {
		got := logLine("DBG", "odd args", []any{"orphan"})

		assert.Equal(t, "[DBG] USERS odd args orphan", got)
	})
}
