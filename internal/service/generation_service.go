package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talenthub_backend/internal/config"
	"talenthub_backend/internal/model"
)

// GenerationContext carries what the generative tier needs to produce a round's
// questions.
type GenerationContext struct {
	Role          string
	Topic         string
	InterviewType model.InterviewType
	Difficulty    string
	Count         int
}

// QuestionGenerator is the external generation collaborator as seen by the
// resolver. Failures are tier failures, never total failures.
type QuestionGenerator interface {
	Generate(ctx context.Context, gc GenerationContext) ([]json.RawMessage, error)
}

// GenerationService calls an OpenAI-compatible chat-completions endpoint and
// parses the reply into question objects.
type GenerationService struct {
	cfg    config.AIConfig
	client *http.Client
}

func NewGenerationService(cfg config.AIConfig) *GenerationService {
	return &GenerationService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const generateAttempts = 2

func (s *GenerationService) Generate(ctx context.Context, gc GenerationContext) ([]json.RawMessage, error) {
	// Upstream models have no "technical" category; those rounds are prompted
	// as behavioral questions.
	interviewType := gc.InterviewType
	if string(interviewType) == "technical" {
		interviewType = model.TypeBehavioral
	}

	prompt := fmt.Sprintf(
		"Generate %d %s interview questions for a %s role on the topic %q at %s difficulty. "+
			"Reply with a JSON array only. Each element must have \"id\", \"content\" and, for mcq questions, "+
			"\"options\" (array of {\"label\",\"text\"}) and \"correctOption\".",
		gc.Count, interviewType, gc.Role, gc.Topic, gc.Difficulty,
	)

	messages := []chatMessage{
		{Role: "system", Content: "You are an interview question writer for a recruiting platform. Output strict JSON."},
		{Role: "user", Content: prompt},
	}

	var lastErr error
	for attempt := 0; attempt < generateAttempts; attempt++ {
		questions, err := s.complete(ctx, messages)
		if err == nil {
			return questions, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (s *GenerationService) complete(ctx context.Context, messages []chatMessage) ([]json.RawMessage, error) {
	reqBody := chatCompletionRequest{
		Model:    s.cfg.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("generation API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("generation API returned no choices")
	}

	return parseQuestionArray(result.Choices[0].Message.Content)
}

// parseQuestionArray tolerates the usual model formatting noise: fenced code
// blocks, a leading language tag, surrounding prose whitespace.
func parseQuestionArray(raw string) ([]json.RawMessage, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var questions []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("unparseable generation output: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("generation output was an empty array")
	}
	return questions, nil
}
