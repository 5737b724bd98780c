package service

import (
	"context"

	"rag-symptom-be/internal/dto"
	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/rag"
)

type IConditionService interface {
	ListConditions(ctx context.Context) *dto.ConditionListResponse
	GetCondition(ctx context.Context, name string) (*dto.ConditionResponse, error)
}

type conditionService struct {
	kb *knowledge.Base
}

func NewConditionService(kb *knowledge.Base) IConditionService {
	return &conditionService{kb: kb}
}

func (s *conditionService) ListConditions(ctx context.Context) *dto.ConditionListResponse {
	names := s.kb.Names()
	return &dto.ConditionListResponse{Conditions: names, Total: len(names)}
}

func (s *conditionService) GetCondition(ctx context.Context, name string) (*dto.ConditionResponse, error) {
	c, ok := s.kb.Get(name)
	if !ok {
		return nil, rag.ErrConditionNotFound
	}
	return &dto.ConditionResponse{
		Name:              c.Name,
		Symptoms:          nonNil(c.Symptoms),
		Questions:         nonNil(c.Questions),
		AyurvedicRemedies: nonNilRemedies(c.AyurvedicRemedies),
		EnglishRemedies:   nonNilRemedies(c.EnglishRemedies),
	}, nil
}

func nonNilRemedies(r []knowledge.Remedy) []knowledge.Remedy {
	if r == nil {
		return []knowledge.Remedy{}
	}
	return r
}
