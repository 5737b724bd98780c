package dto

import (
	"time"

	"rag-symptom-be/pkg/knowledge"
)

type AskRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	TopK     int    `json:"top_k" validate:"omitempty,min=1,max=20"`
}

type CandidateDTO struct {
	Id        string  `json:"id"`
	Condition string  `json:"condition"`
	Doc       string  `json:"doc"`
	Score     float64 `json:"score"`
}

type AskResponse struct {
	Answer     string         `json:"answer"`
	Outcome    string         `json:"outcome"`
	Condition  string         `json:"condition,omitempty"`
	Candidates []CandidateDTO `json:"candidates"`
}

type CreateConsultationResponse struct {
	Id    string `json:"id"`
	State string `json:"state"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type TurnResponse struct {
	SessionId       string         `json:"session_id"`
	State           string         `json:"state"`
	Reply           string         `json:"reply"`
	Outcome         string         `json:"outcome"`
	ActiveCondition string         `json:"active_condition,omitempty"`
	QuestionsAsked  []string       `json:"questions_asked"`
	Candidates      []CandidateDTO `json:"candidates"`
}

type ChatMessageDTO struct {
	Speaker   string    `json:"speaker"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ConsultationResponse struct {
	Id              string           `json:"id"`
	State           string           `json:"state"`
	ActiveCondition string           `json:"active_condition,omitempty"`
	QuestionsAsked  []string         `json:"questions_asked"`
	Candidates      []CandidateDTO   `json:"candidates"`
	ChatHistory     []ChatMessageDTO `json:"chat_history"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type ConditionListResponse struct {
	Conditions []string `json:"conditions"`
	Total      int      `json:"total"`
}

type ConditionResponse struct {
	Name              string             `json:"name"`
	Symptoms          []string           `json:"symptoms"`
	Questions         []string           `json:"questions"`
	AyurvedicRemedies []knowledge.Remedy `json:"ayurvedic"`
	EnglishRemedies   []knowledge.Remedy `json:"english"`
}

type IndexStatusResponse struct {
	Backend    string `json:"backend"`
	Documents  int64  `json:"documents"`
	Conditions int    `json:"conditions"`
}

type RebuildIndexResponse struct {
	RequestId string `json:"request_id"`
}

// PublishRebuildIndexMessage is the watermill payload of a rebuild request
type PublishRebuildIndexMessage struct {
	RequestId   string    `json:"request_id"`
	RequestedAt time.Time `json:"requested_at"`
}
