package service

import (
	"context"
	"strings"
	"sync"

	"wa-coach-bot/internal/domain"
	apperrors "wa-coach-bot/pkg/errors"

	"cloud.google.com/go/vertexai/genai"
)

// AIService implements domain.CompletionBackend on Vertex AI. The client is
// created lazily on the first call so missing project configuration or
// credentials never prevent the bot from starting; they surface as a backend
// error on the first completion attempt instead.
type AIService struct {
	projectID string
	location  string
	model     string
	logger    domain.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewAIService creates the completion backend.
func NewAIService(config domain.Config, logger domain.Logger) *AIService {
	return &AIService{
		projectID: config.GetVertexProjectID(),
		location:  config.GetVertexLocation(),
		model:     config.GetModelName(),
		logger:    logger,
	}
}

// Complete runs one completion call and returns the generated text.
func (s *AIService) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	name := req.Model
	if name == "" {
		name = s.model
	}
	model := client.GenerativeModel(name)
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.SetTemperature(req.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", apperrors.NewBackendError("completion call failed", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewBackendError("empty response from model", nil)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	answer := sb.String()
	if answer == "" {
		return "", apperrors.NewBackendError("model returned no text parts", nil)
	}

	s.logger.Debug("Completion generated", "model", name, "chars", len(answer))
	return answer, nil
}

func (s *AIService) ensureClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	if s.projectID == "" {
		return nil, apperrors.NewBackendError("vertex project id not configured", nil)
	}

	client, err := genai.NewClient(ctx, s.projectID, s.location)
	if err != nil {
		return nil, apperrors.NewBackendError("failed to create vertex ai client", err)
	}
	s.client = client
	s.logger.Info("Vertex AI client initialized", "project", s.projectID, "location", s.location)
	return s.client, nil
}
