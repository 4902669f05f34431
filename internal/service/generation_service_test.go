package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talenthub_backend/internal/config"
	"talenthub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func generationServiceFor(url string) *GenerationService {
	return NewGenerationService(config.AIConfig{
		BaseURL:        url,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	})
}

func TestGenerateParsesFencedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(chatReply("```json\n[{\"id\":\"q1\",\"content\":\"one\"},{\"id\":\"q2\",\"content\":\"two\"}]\n```")))
	}))
	defer server.Close()

	s := generationServiceFor(server.URL)
	questions, err := s.Generate(context.Background(), GenerationContext{
		Role:          "Backend Engineer",
		Topic:         "concurrency",
		InterviewType: model.TypeBehavioral,
		Difficulty:    "medium",
		Count:         2,
	})
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestGenerateRemapsTechnicalType(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Messages[len(req.Messages)-1].Content
		w.Write([]byte(chatReply(`[{"id":"q1"}]`)))
	}))
	defer server.Close()

	s := generationServiceFor(server.URL)
	_, err := s.Generate(context.Background(), GenerationContext{
		InterviewType: model.InterviewType("technical"),
		Count:         1,
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "behavioral")
	assert.NotContains(t, prompt, "technical interview questions")
}

func TestGenerateRetriesOnce(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(chatReply(`[{"id":"q1"}]`)))
	}))
	defer server.Close()

	s := generationServiceFor(server.URL)
	questions, err := s.Generate(context.Background(), GenerationContext{Count: 1})
	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, 2, calls)
}

func TestGenerateGivesUpAfterAttempts(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := generationServiceFor(server.URL)
	_, err := s.Generate(context.Background(), GenerationContext{Count: 1})
	assert.Error(t, err)
	assert.Equal(t, generateAttempts, calls)
}

func TestParseQuestionArray(t *testing.T) {
	questions, err := parseQuestionArray("  ```json\n[{\"id\":\"a\"}]\n```  ")
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	questions, err = parseQuestionArray(`[{"id":"a"},{"id":"b"}]`)
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	_, err = parseQuestionArray("no json here")
	assert.Error(t, err)

	_, err = parseQuestionArray("[]")
	assert.Error(t, err)
}
