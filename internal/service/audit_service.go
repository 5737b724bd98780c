package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/events"
	pktNats "rag-symptom-be/pkg/nats"
)

// EventSubscriber is the part of pkg/nats.Subscriber the audit service uses
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// AuditService records consultation outcomes published on the event bus
type AuditService struct {
	subscriber EventSubscriber
	logger     logger.ILogger

	mu     sync.Mutex
	counts map[string]int
}

func NewAuditService(sub EventSubscriber, log logger.ILogger) *AuditService {
	return &AuditService{
		subscriber: sub,
		logger:     log,
		counts:     make(map[string]int),
	}
}

// Start begins listening to all consultation events.
func (s *AuditService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, events.SubjectPrefix+">", "consultation-audit", s.handleEvent); err != nil {
		s.logger.Error("AUDIT", "Failed to start audit subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("AUDIT", "Audit service started, listening to events.>", nil)
	return nil
}

func (s *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), events.SubjectPrefix)
	payload := event.Payload()

	details := map[string]interface{}{
		"type":        typeCode,
		"occurred_at": event.Timestamp(),
	}
	for k, v := range payload {
		details[k] = v
	}

	switch typeCode {
	case events.TypeConsultationFinalized:
		s.logger.Info("AUDIT", fmt.Sprintf("Consultation finalized: %v", payload["condition"]), details)
	case events.TypeConsultationNoMatch:
		s.logger.Info("AUDIT", "Consultation ended without a match", details)
	case events.TypeKnowledgeEntryMissing:
		// index and knowledge base disagree
		s.logger.Warn("AUDIT", fmt.Sprintf("Knowledge entry missing: %v", payload["condition"]), details)
	default:
		s.logger.Debug("AUDIT", fmt.Sprintf("Ignoring event: %s", typeCode), nil)
		return nil
	}

	s.mu.Lock()
	s.counts[typeCode]++
	s.mu.Unlock()
	return nil
}

// Counts returns how many events of each type were recorded
func (s *AuditService) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}
