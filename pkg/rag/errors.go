package rag

import "errors"

var (
	// ErrNoCandidate means retrieval returned nothing (empty or cold index)
	ErrNoCandidate = errors.New("no matching condition")

	// ErrMissingKnowledgeEntry means the index returned a condition the
	// knowledge base does not know. Index and knowledge base are out of sync.
	ErrMissingKnowledgeEntry = errors.New("condition missing from knowledge base")

	// ErrIndexUnavailable is fatal at startup
	ErrIndexUnavailable = errors.New("retrieval index unavailable")

	// ErrGenerationFailed is returned after the single retry also failed
	ErrGenerationFailed = errors.New("text generation failed")

	ErrConditionNotFound = errors.New("condition not found")

	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFinalized = errors.New("session already finalized")
	ErrTurnInProgress   = errors.New("another turn is in progress for this session")
)

// Fixed replies shown to the caller instead of raw errors
const (
	NoCandidateReply      = "Sorry, I could not match your symptoms to any condition I know about. Please describe them in more detail, or consult a doctor."
	GenerationFailedReply = "Sorry, an error occurred while preparing your answer. Please try again in a moment."
	Disclaimer            = "This information is educational only and is not medical advice. Please consult a qualified doctor before taking any medicine."
)

// MissingEntryReply is the reply for a condition the knowledge base lacks
func MissingEntryReply(condition string) string {
	return "Sorry, I don't have detailed information for " + condition + "."
}
