package enginetest

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weirlabs/weir/internal/engine"
	"github.com/weirlabs/weir/internal/events"
)

func TestScriptedGraph_PlaysBatchesInOrder(t *testing.T) {
	t.Parallel()

	g := NewScriptedGraph(
		[]events.Raw{{"status": "complete"}},
		[]events.Raw{{"status": "error"}},
	)

	it, err := g.Stream(context.Background(), engine.NewMessageInput("a"), nil, engine.StreamModeUpdates)
	require.NoError(t, err)
	first, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "complete", first["status"])
	_, err = it.Next()
	assert.Equal(t, io.EOF, err)

	it, err = g.Stream(context.Background(), engine.NewDecisionsInput([]engine.Decision{engine.Approve()}), nil, engine.StreamModeUpdates)
	require.NoError(t, err)
	second, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "error", second["status"])

	// Script exhausted: further invocations yield empty streams.
	it, err = g.Stream(context.Background(), engine.NewMessageInput("c"), nil, engine.StreamModeUpdates)
	require.NoError(t, err)
	_, err = it.Next()
	assert.Equal(t, io.EOF, err)

	calls := g.Calls()
	require.Len(t, calls, 3)
	assert.False(t, calls[0].Input.IsResume())
	assert.True(t, calls[1].Input.IsResume())
}

func TestScriptedGraph_Fault(t *testing.T) {
	t.Parallel()

	fault := errors.New("stream broke")
	g := NewScriptedGraph([]events.Raw{{"status": "complete"}})
	g.Fault = fault

	it, err := g.Stream(context.Background(), engine.NewMessageInput("a"), nil, engine.StreamModeUpdates)
	require.NoError(t, err)
	_, err = it.Next()
	require.NoError(t, err)
	_, err = it.Next()
	assert.ErrorIs(t, err, fault)

	stream, err := g.StreamAsync(context.Background(), engine.NewMessageInput("b"), nil, engine.StreamModeUpdates)
	require.NoError(t, err)
	for range stream.Events() {
	}
	assert.ErrorIs(t, stream.Err(), fault)
}
