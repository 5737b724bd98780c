package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStreamCreator struct {
	configs []jetstream.StreamConfig
	err     error
}

func (f *fakeStreamCreator) CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return nil, errors.New("no deadline")
	}
	f.configs = append(f.configs, cfg)
	return nil, f.err
}

func TestEnsureStreamDeclaresEventsStream(t *testing.T) {
	js := &fakeStreamCreator{}

	// a subscriber and a publisher both declare it; the second call is a no-op update
	require.NoError(t, ensureStream(js))
	require.NoError(t, ensureStream(js))

	require.Len(t, js.configs, 2)
	cfg := js.configs[0]
	assert.Equal(t, StreamName, cfg.Name)
	assert.Equal(t, []string{"events.>"}, cfg.Subjects)
	assert.Equal(t, jetstream.LimitsPolicy, cfg.Retention)
	assert.Equal(t, js.configs[0], js.configs[1])
}

func TestEnsureStreamWrapsError(t *testing.T) {
	js := &fakeStreamCreator{err: errors.New("jetstream not enabled")}

	err := ensureStream(js)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVENTS")
	assert.ErrorIs(t, err, js.err)
}
