package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStreamMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      StreamMode
		wantError bool
	}{
		{name: "empty defaults to updates", input: "", want: StreamModeUpdates},
		{name: "updates", input: "updates", want: StreamModeUpdates},
		{name: "values", input: "values", want: StreamModeValues},
		{name: "unknown mode", input: "deltas", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStreamMode(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown stream mode")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBuildInput(t *testing.T) {
	t.Parallel()

	t.Run("fresh message", func(t *testing.T) {
		in, err := BuildInput("Hello, agent!", nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello, agent!", in.Message)
		assert.Empty(t, in.Decisions)
		assert.False(t, in.IsResume())
	})

	t.Run("decision batch", func(t *testing.T) {
		in, err := BuildInput("", []Decision{Approve()})
		require.NoError(t, err)
		assert.Empty(t, in.Message)
		require.Len(t, in.Decisions, 1)
		assert.Equal(t, DecisionApprove, in.Decisions[0].Type)
		assert.True(t, in.IsResume())
	})

	t.Run("both supplied is rejected", func(t *testing.T) {
		_, err := BuildInput("hi", []Decision{Reject()})
		assert.Error(t, err)
	})

	t.Run("neither supplied is rejected", func(t *testing.T) {
		_, err := BuildInput("", nil)
		assert.Error(t, err)
	})
}

func TestDecisionConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Decision{Type: DecisionApprove}, Approve())
	assert.Equal(t, Decision{Type: DecisionReject}, Reject())

	custom := Custom(map[string]any{"type": "edit", "args": map[string]any{"q": "y"}})
	assert.Equal(t, DecisionCustom, custom.Type)
	assert.Equal(t, "edit", custom.Payload["type"])
}

type stubGraph struct{ Graph }

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	_, err := reg.Get("missing")
	assert.ErrorIs(t, err, ErrGraphNotFound)

	stub := &stubGraph{}
	reg.Register("graph", stub)
	g, err := reg.Get("graph")
	require.NoError(t, err)
	assert.Same(t, stub, g)

	assert.Equal(t, []string{"graph"}, reg.Names())
}
