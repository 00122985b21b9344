package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON unchanged",
			input:    `[{"key": "value"}]`,
			expected: `[{"key": "value"}]`,
		},
		{
			name:     "json code block",
			input:    "```json\n[{\"key\": \"value\"}]\n```",
			expected: `[{"key": "value"}]`,
		},
		{
			name:     "generic code block",
			input:    "```\n[{\"key\": \"value\"}]\n```",
			expected: `[{"key": "value"}]`,
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  \n```json\n{\"a\": 1}\n```\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "language identifier on first line",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "no trailing newline before closing fence",
			input:    "```\n{\"a\": 1}```",
			expected: `{"a": 1}`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
