package service

import (
	"context"
	"encoding/json"

	"rag-symptom-be/internal/dto"
	"rag-symptom-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// IndexRebuilder is satisfied by *indexer.Builder
type IndexRebuilder interface {
	Build(ctx context.Context) (int, error)
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	rebuilder  IndexRebuilder
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	rebuilder IndexRebuilder,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		rebuilder:  rebuilder,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishRebuildIndexMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("INDEXER", "Failed to unmarshal rebuild request", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are never retried
		return
	}

	cs.logger.Info("INDEXER", "Processing rebuild request", map[string]interface{}{"request_id": payload.RequestId})

	n, err := cs.rebuilder.Build(ctx)
	if err != nil {
		// The previous index content stays in place; a new request retries
		cs.logger.Error("INDEXER", "Rebuild failed", map[string]interface{}{
			"request_id": payload.RequestId,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Info("INDEXER", "Rebuild completed", map[string]interface{}{
		"request_id": payload.RequestId,
		"conditions": n,
	})
	msg.Ack()
}
