package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weirlabs/weir/internal/engine"
	"github.com/weirlabs/weir/internal/events"
	"github.com/weirlabs/weir/internal/output"
)

func resolveWith(t *testing.T, input string) (engine.Decision, bool, string) {
	t.Helper()

	var out, errBuf bytes.Buffer
	printer := output.NewPrinterWithWriters(&out, &errBuf, false)
	p := New(strings.NewReader(input), printer)

	decision, exit := p.Resolve(events.Pause{})
	return decision, exit, out.String() + errBuf.String()
}

func TestPrompt_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     engine.Decision
		wantExit bool
	}{
		{name: "approve", input: "1\n", want: engine.Approve()},
		{name: "reject", input: "2\n", want: engine.Reject()},
		{name: "empty input defaults to approve", input: "\n", want: engine.Approve()},
		{name: "eof defaults to approve", input: "", want: engine.Approve()},
		{name: "exit", input: "4\n", wantExit: true},
		{
			name:  "custom JSON",
			input: "3\n{\"type\": \"approve\", \"note\": \"ok\"}\n",
			want:  engine.Custom(map[string]any{"type": "approve", "note": "ok"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, exit, _ := resolveWith(t, tt.input)
			assert.Equal(t, tt.wantExit, exit)
			if !tt.wantExit {
				assert.Equal(t, tt.want, decision)
			}
		})
	}
}

func TestPrompt_CustomParseFailureDowngradesToReject(t *testing.T) {
	t.Parallel()

	decision, exit, rendered := resolveWith(t, "3\nnot valid json\n")

	assert.False(t, exit)
	assert.Equal(t, engine.Reject(), decision)
	assert.Contains(t, rendered, "Invalid JSON")
}

func TestPrompt_InvalidChoiceReprompts(t *testing.T) {
	t.Parallel()

	decision, exit, rendered := resolveWith(t, "9\n2\n")

	assert.False(t, exit)
	assert.Equal(t, engine.Reject(), decision)
	assert.Contains(t, rendered, "Invalid choice")
}

func TestPrompt_MenuIsShown(t *testing.T) {
	t.Parallel()

	_, _, rendered := resolveWith(t, "1\n")

	require.Contains(t, rendered, "How would you like to proceed?")
	assert.Contains(t, rendered, "1. Approve all actions")
	assert.Contains(t, rendered, "2. Reject all actions")
	assert.Contains(t, rendered, "3. Provide custom decision (JSON)")
	assert.Contains(t, rendered, "4. Exit")
}
