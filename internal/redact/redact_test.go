package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "task not found",
			expected: "task not found",
		},
		{
			name:     "database connection string",
			input:    "dial postgres://tasks:secret@db:5432/tasks",
			expected: "dial [REDACTED_CREDENTIAL]db:5432/tasks",
		},
		{
			name:     "password parameter",
			input:    "password=hunter22 rejected",
			expected: "[REDACTED_CREDENTIAL] rejected",
		},
		{
			name:     "sqlite file path",
			input:    "open /var/lib/tasks/tasks.db: permission denied",
			expected: "open [REDACTED_PATH]: permission denied",
		},
		{
			name:     "SQL statement",
			input:    "query failed: SELECT task_id FROM tasks WHERE title = 'x'",
			expected: "query failed: [REDACTED_SQL]",
		},
		{
			name:     "host name",
			input:    "dial tcp: lookup db.internal.example.com: no such host",
			expected: "dial tcp: lookup [REDACTED_HOST]: no such host",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, redact.String(tc.input))
		})
	}
}

func TestRedactError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	wrapped := fmt.Errorf("failed to get task: %w",
		errors.New("open /var/lib/tasks/tasks.db: no such file"))
	assert.Equal(t, "failed to get task: open [REDACTED_PATH]: no such file", redact.Error(wrapped))
}
