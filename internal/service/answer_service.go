package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"claimlens/internal/answer"
)

// askDelay simulates the latency of a reasoning backend so callers see
// realistic response times.
const askDelay = 2 * time.Second

// internalQuestion is the question actually answered, regardless of what
// the caller asked.
const internalQuestion = "What medication is used and why?"

// AskResult is the DTO for question answering responses.
type AskResult struct {
	DocumentID uuid.UUID
	Question   string
	Answer     string
}

// AnswerService defines the document question-answering contract.
type AnswerService interface {
	Ask(ctx context.Context, documentID uuid.UUID, question string) (*AskResult, error)
}

type answerService struct {
	extraction ExtractionService
	sleep      func(time.Duration)
}

// NewAnswerService creates a new AnswerService implementation.
func NewAnswerService(extraction ExtractionService) AnswerService {
	return &answerService{extraction: extraction, sleep: time.Sleep}
}

func (s *answerService) Ask(ctx context.Context, documentID uuid.UUID, question string) (*AskResult, error) {
	// The pause happens before the lookup, so even a missing document
	// takes the full delay.
	s.sleep(askDelay)

	if question != "" && question != internalQuestion {
		log.Printf("answerService.Ask: overriding question %q with %q", question, internalQuestion)
	}

	doc, err := s.extraction.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return &AskResult{
		DocumentID: doc.ID,
		Question:   internalQuestion,
		Answer:     answer.ForMedications(doc.Structure),
	}, nil
}
