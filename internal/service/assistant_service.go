package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rag-symptom-be/internal/dto"
	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/rag"
	"rag-symptom-be/pkg/rag/dialogue"
	ragEvents "rag-symptom-be/pkg/rag/events"
	"rag-symptom-be/pkg/rag/session"
	"rag-symptom-be/pkg/store"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("rag-symptom-be/internal/service")

// IAssistantService serves single-shot questions and multi-turn consultations
type IAssistantService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	CreateConsultation(ctx context.Context) (*dto.CreateConsultationResponse, error)
	SendMessage(ctx context.Context, sessionId string, request *dto.SendMessageRequest) (*dto.TurnResponse, error)
	GetConsultation(ctx context.Context, sessionId string) (*dto.ConsultationResponse, error)
	DeleteConsultation(ctx context.Context, sessionId string) error
}

// DialogueEngine is satisfied by *dialogue.Controller
type DialogueEngine interface {
	Turn(ctx context.Context, session *store.Session, message string) (*dialogue.Result, error)
	Ask(ctx context.Context, question string, k int) (*dialogue.Result, error)
}

// TurnObserver is notified after every persisted turn; *websocket.Hub
// implements it to push turns to session watchers.
type TurnObserver interface {
	TurnCompleted(sessionId string, turn *dto.TurnResponse)
}

type assistantService struct {
	engine         DialogueEngine
	sessionManager *session.Manager
	events         ragEvents.Publisher
	observer       TurnObserver
	logger         logger.ILogger

	// session id -> struct{} while a turn runs; a second turn is rejected
	inFlight sync.Map
}

func NewAssistantService(
	engine DialogueEngine,
	sessionManager *session.Manager,
	events ragEvents.Publisher,
	observer TurnObserver,
	logger logger.ILogger,
) IAssistantService {
	return &assistantService{
		engine:         engine,
		sessionManager: sessionManager,
		events:         events,
		observer:       observer,
		logger:         logger,
	}
}

func (s *assistantService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	ctx, span := tracer.Start(ctx, "AssistantService.Ask")
	defer span.End()

	res, err := s.engine.Ask(ctx, request.Question, request.TopK)
	if err != nil {
		return nil, s.retrievalError(err)
	}
	s.logOutcome("", res)
	span.SetAttributes(attribute.String("rag.outcome", string(res.Outcome)))

	return &dto.AskResponse{
		Answer:     res.Reply,
		Outcome:    string(res.Outcome),
		Condition:  res.Condition,
		Candidates: toCandidateDTOs(res.Candidates),
	}, nil
}

func (s *assistantService) CreateConsultation(ctx context.Context) (*dto.CreateConsultationResponse, error) {
	sess, err := s.sessionManager.Create(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("SESSION", "Consultation created", map[string]interface{}{"session_id": sess.ID})
	return &dto.CreateConsultationResponse{Id: sess.ID, State: sess.State}, nil
}

func (s *assistantService) SendMessage(ctx context.Context, sessionId string, request *dto.SendMessageRequest) (*dto.TurnResponse, error) {
	if _, busy := s.inFlight.LoadOrStore(sessionId, struct{}{}); busy {
		return nil, rag.ErrTurnInProgress
	}
	defer s.inFlight.Delete(sessionId)

	ctx, span := tracer.Start(ctx, "AssistantService.SendMessage")
	defer span.End()
	span.SetAttributes(attribute.String("rag.session_id", sessionId))

	sess, err := s.sessionManager.Load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Turn(ctx, sess, request.Message)
	if err != nil {
		if errors.Is(err, rag.ErrSessionFinalized) {
			return nil, err
		}
		return nil, s.retrievalError(err)
	}

	if err := s.sessionManager.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logOutcome(sess.ID, res)
	span.SetAttributes(attribute.String("rag.outcome", string(res.Outcome)))
	s.publishOutcome(ctx, sess, res, request.Message)

	turn := &dto.TurnResponse{
		SessionId:       sess.ID,
		State:           sess.State,
		Reply:           res.Reply,
		Outcome:         string(res.Outcome),
		ActiveCondition: sess.ActiveCondition,
		QuestionsAsked:  nonNil(sess.QuestionsAsked),
		Candidates:      toCandidateDTOs(sess.Candidates),
	}
	if s.observer != nil {
		s.observer.TurnCompleted(sess.ID, turn)
	}
	return turn, nil
}

func (s *assistantService) GetConsultation(ctx context.Context, sessionId string) (*dto.ConsultationResponse, error) {
	sess, err := s.sessionManager.Load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	history := make([]dto.ChatMessageDTO, 0, len(sess.ChatHistory))
	for _, m := range sess.ChatHistory {
		history = append(history, dto.ChatMessageDTO{Speaker: m.Speaker, Content: m.Content, CreatedAt: m.CreatedAt})
	}

	return &dto.ConsultationResponse{
		Id:              sess.ID,
		State:           sess.State,
		ActiveCondition: sess.ActiveCondition,
		QuestionsAsked:  nonNil(sess.QuestionsAsked),
		Candidates:      toCandidateDTOs(sess.Candidates),
		ChatHistory:     history,
		CreatedAt:       sess.CreatedAt,
		UpdatedAt:       sess.UpdatedAt,
	}, nil
}

func (s *assistantService) DeleteConsultation(ctx context.Context, sessionId string) error {
	if err := s.sessionManager.Delete(ctx, sessionId); err != nil {
		return err
	}
	s.logger.Info("SESSION", "Consultation deleted", map[string]interface{}{"session_id": sessionId})
	return nil
}

// retrievalError hides provider details behind ErrIndexUnavailable
func (s *assistantService) retrievalError(err error) error {
	s.logger.Error("ASSISTANT", "Retrieval failed", map[string]interface{}{"error": err.Error()})
	return fmt.Errorf("%w: %v", rag.ErrIndexUnavailable, err)
}

func (s *assistantService) logOutcome(sessionId string, res *dialogue.Result) {
	details := map[string]interface{}{
		"session_id": sessionId,
		"outcome":    string(res.Outcome),
		"condition":  res.Condition,
	}
	switch res.Outcome {
	case dialogue.OutcomeGenerationFailed:
		details["error"] = res.Err.Error()
		s.logger.Error("ASSISTANT", "Generation failed, sent fallback reply", details)
	case dialogue.OutcomeMissingEntry:
		s.logger.Warn("ASSISTANT", "Knowledge base entry missing", details)
	default:
		s.logger.Info("ASSISTANT", "Turn completed", details)
	}
}

func (s *assistantService) publishOutcome(ctx context.Context, sess *store.Session, res *dialogue.Result, message string) {
	switch res.Outcome {
	case dialogue.OutcomeFinalized:
		s.events.PublishFinalized(ctx, sess.ID, res.Condition, userTurns(sess))
	case dialogue.OutcomeNotFound:
		s.events.PublishNoMatch(ctx, sess.ID, message)
	case dialogue.OutcomeMissingEntry:
		s.events.PublishMissingEntry(ctx, sess.ID, res.Condition)
	}
}

func userTurns(sess *store.Session) int {
	n := 0
	for _, m := range sess.ChatHistory {
		if m.Speaker == store.SpeakerUser {
			n++
		}
	}
	return n
}

func toCandidateDTOs(candidates []store.Candidate) []dto.CandidateDTO {
	out := make([]dto.CandidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.CandidateDTO{
			Id:        c.ID,
			Condition: c.Condition,
			Doc:       c.Document,
			Score:     c.Distance,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
