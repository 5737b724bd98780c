package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/events"
	pktNats "rag-symptom-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSubscriber struct {
	subject string
	handler pktNats.EventHandler
	err     error
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error {
	f.subject = subject
	f.handler = handler
	return f.err
}

func TestAuditServiceRecordsConsultationEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sub := &fakeSubscriber{}
	svc := NewAuditService(sub, logger.NewFromZap(zap.New(core)))
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx))
	assert.Equal(t, "events.>", sub.subject)
	require.NotNil(t, sub.handler)

	now := time.Now()
	inputs := []events.BaseEvent{
		{Type: events.TypeConsultationFinalized, Data: map[string]interface{}{"session_id": "s1", "condition": "flu"}, OccurredAt: now},
		{Type: events.TypeConsultationFinalized, Data: map[string]interface{}{"session_id": "s2", "condition": "migraine"}, OccurredAt: now},
		{Type: events.TypeConsultationNoMatch, Data: map[string]interface{}{"session_id": "s3"}, OccurredAt: now},
		{Type: "events." + events.TypeKnowledgeEntryMissing, Data: map[string]interface{}{"condition": "ghost"}, OccurredAt: now},
		{Type: "SOMETHING_ELSE", OccurredAt: now},
	}
	for _, e := range inputs {
		require.NoError(t, sub.handler(ctx, e))
	}

	assert.Equal(t, map[string]int{
		events.TypeConsultationFinalized: 2,
		events.TypeConsultationNoMatch:   1,
		events.TypeKnowledgeEntryMissing: 1,
	}, svc.Counts())

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "Knowledge entry missing: ghost", warns[0].Message)
}

func TestAuditServiceStartFailure(t *testing.T) {
	sub := &fakeSubscriber{err: errors.New("no stream")}
	svc := NewAuditService(sub, logger.NewNopLogger())

	assert.Error(t, svc.Start(context.Background()))
}
