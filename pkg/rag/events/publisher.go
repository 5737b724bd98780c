package events

import (
	"context"
	"time"

	"rag-symptom-be/internal/pkg/logger"
	pkgEvents "rag-symptom-be/pkg/events"
)

// Sink is the transport used by NatsPublisher; *nats.Publisher satisfies it
type Sink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// Publisher abstracts consultation lifecycle events
type Publisher interface {
	PublishFinalized(ctx context.Context, sessionID, condition string, turns int)
	PublishNoMatch(ctx context.Context, sessionID, message string)
	PublishMissingEntry(ctx context.Context, sessionID, condition string)
}

// NatsPublisher implements Publisher. A nil sink turns every call into a no-op
// so the assistant runs without NATS.
type NatsPublisher struct {
	sink   Sink
	logger logger.ILogger
	now    func() time.Time
}

func NewNatsPublisher(sink Sink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{sink: sink, logger: logger, now: time.Now}
}

// PublishFinalized emits CONSULTATION_FINALIZED once a prescription was delivered
func (p *NatsPublisher) PublishFinalized(ctx context.Context, sessionID, condition string, turns int) {
	p.publish(ctx, pkgEvents.TypeConsultationFinalized, map[string]interface{}{
		"session_id": sessionID,
		"condition":  condition,
		"turns":      turns,
	})
}

// PublishNoMatch emits CONSULTATION_NO_MATCH when retrieval found nothing
func (p *NatsPublisher) PublishNoMatch(ctx context.Context, sessionID, message string) {
	p.publish(ctx, pkgEvents.TypeConsultationNoMatch, map[string]interface{}{
		"session_id": sessionID,
		"message":    message,
	})
}

// PublishMissingEntry emits KNOWLEDGE_ENTRY_MISSING when the index and the
// knowledge base disagree
func (p *NatsPublisher) PublishMissingEntry(ctx context.Context, sessionID, condition string) {
	p.publish(ctx, pkgEvents.TypeKnowledgeEntryMissing, map[string]interface{}{
		"session_id": sessionID,
		"condition":  condition,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.sink == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: p.now(),
	}
	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
