package service

import (
	"context"
	"encoding/json"
	"time"

	"rag-symptom-be/internal/dto"
	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/rag/index"

	"github.com/google/uuid"
)

type IIndexService interface {
	Status(ctx context.Context) (*dto.IndexStatusResponse, error)
	RequestRebuild(ctx context.Context) (*dto.RebuildIndexResponse, error)
}

type indexService struct {
	index            index.Index
	kb               *knowledge.Base
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewIndexService(idx index.Index, kb *knowledge.Base, publisherService IPublisherService, logger logger.ILogger) IIndexService {
	return &indexService{
		index:            idx,
		kb:               kb,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (s *indexService) Status(ctx context.Context) (*dto.IndexStatusResponse, error) {
	count, err := s.index.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.IndexStatusResponse{
		Backend:    s.index.Backend(),
		Documents:  count,
		Conditions: s.kb.Len(),
	}, nil
}

// RequestRebuild queues a rebuild; the consumer service performs it
func (s *indexService) RequestRebuild(ctx context.Context) (*dto.RebuildIndexResponse, error) {
	payload := dto.PublishRebuildIndexMessage{
		RequestId:   uuid.NewString(),
		RequestedAt: time.Now().UTC(),
	}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	s.logger.Info("INDEXER", "Rebuild requested", map[string]interface{}{"request_id": payload.RequestId})
	return &dto.RebuildIndexResponse{RequestId: payload.RequestId}, nil
}
