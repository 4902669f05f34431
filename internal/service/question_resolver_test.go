package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"talenthub_backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBank struct {
	questions []model.BankQuestion
	err       error
	called    bool
}

func (s *stubBank) FetchQuestions(companyID uint, collectionID string, interviewType model.InterviewType, difficulty string) ([]model.BankQuestion, error) {
	s.called = true
	return s.questions, s.err
}

type stubGenerator struct {
	questions []json.RawMessage
	err       error
	called    bool
}

func (s *stubGenerator) Generate(ctx context.Context, gc GenerationContext) ([]json.RawMessage, error) {
	s.called = true
	return s.questions, s.err
}

func resolverRound(sourceID *string) *model.CampaignRoundConfig {
	return &model.CampaignRoundConfig{
		CampaignID:       1,
		RoundNumber:      1,
		Name:             "System Design",
		InterviewType:    model.TypeBehavioral,
		Difficulty:       "medium",
		QuestionCount:    2,
		QuestionSourceID: sourceID,
	}
}

func bankQuestion(content, correct string) model.BankQuestion {
	q := model.BankQuestion{
		CompanyID:     1,
		InterviewType: model.TypeBehavioral,
		Difficulty:    "medium",
		Content:       content,
		CorrectOption: correct,
	}
	q.ID = model.GenerateUUID()
	return q
}

func TestResolveBankTier(t *testing.T) {
	sourceID := uuid.New().String()
	bank := &stubBank{questions: []model.BankQuestion{
		bankQuestion("What is a goroutine?", "A"),
		bankQuestion("Explain channels.", "B"),
		bankQuestion("Describe defer.", "C"),
	}}
	gen := &stubGenerator{}
	r := NewQuestionResolver(bank, gen, nil)

	set := r.Resolve(context.Background(), resolverRound(&sourceID), &model.Campaign{CompanyID: 1})

	assert.Equal(t, model.SourceQuestionBank, set.Source)
	assert.Len(t, set.Questions, 2, "sampled down to the round's question count")
	assert.False(t, gen.called, "generator must not run when the bank tier succeeds")
}

func TestResolveBankSnapshotKeepsGradingFields(t *testing.T) {
	sourceID := uuid.New().String()
	bank := &stubBank{questions: []model.BankQuestion{bankQuestion("Pick one.", "B")}}
	r := NewQuestionResolver(bank, nil, nil)

	set := r.Resolve(context.Background(), resolverRound(&sourceID), &model.Campaign{CompanyID: 1})

	require.Len(t, set.Questions, 1)
	var snap map[string]interface{}
	require.NoError(t, json.Unmarshal(set.Questions[0], &snap))
	assert.Equal(t, "B", snap["correctOption"], "the frozen snapshot is the grading authority")
}

func TestResolveGeneratorFallback(t *testing.T) {
	gen := &stubGenerator{questions: []json.RawMessage{
		json.RawMessage(`{"id":"g1","content":"Generated question"}`),
	}}
	bank := &stubBank{}
	r := NewQuestionResolver(bank, gen, nil)

	// no source ref: bank tier is unusable without touching the store
	set := r.Resolve(context.Background(), resolverRound(nil), &model.Campaign{CompanyID: 1})

	assert.Equal(t, model.SourceAIFallback, set.Source)
	assert.Len(t, set.Questions, 1)
	assert.False(t, bank.called)
}

func TestResolveGeneratorFallbackOnBankError(t *testing.T) {
	sourceID := uuid.New().String()
	bank := &stubBank{err: errors.New("store unavailable")}
	gen := &stubGenerator{questions: []json.RawMessage{json.RawMessage(`{"id":"g1"}`)}}
	r := NewQuestionResolver(bank, gen, nil)

	set := r.Resolve(context.Background(), resolverRound(&sourceID), &model.Campaign{CompanyID: 1})

	assert.Equal(t, model.SourceAIFallback, set.Source)
	assert.True(t, bank.called)
}

func TestResolveStaticFallbackNeverEmpty(t *testing.T) {
	gen := &stubGenerator{err: errors.New("generation down")}
	r := NewQuestionResolver(&stubBank{}, gen, nil)

	set := r.Resolve(context.Background(), resolverRound(nil), &model.Campaign{CompanyID: 1})

	assert.Equal(t, model.SourceDefaultFallback, set.Source)
	require.NotEmpty(t, set.Questions, "the cascade must always produce at least one question")
	assert.True(t, gen.called)
}

func TestResolveNonUUIDSourceSkipsBank(t *testing.T) {
	legacyRef := "legacy-collection-42"
	bank := &stubBank{questions: []model.BankQuestion{bankQuestion("unused", "")}}
	r := NewQuestionResolver(bank, nil, nil)

	set := r.Resolve(context.Background(), resolverRound(&legacyRef), &model.Campaign{CompanyID: 1})

	assert.False(t, bank.called, "a non-UUID ref is rejected before the store is queried")
	assert.Equal(t, model.SourceDefaultFallback, set.Source)
}

func TestResolveSampleReturnsAllWhenBankIsSmall(t *testing.T) {
	sourceID := uuid.New().String()
	bank := &stubBank{questions: []model.BankQuestion{bankQuestion("only one", "")}}
	r := NewQuestionResolver(bank, nil, nil)

	round := resolverRound(&sourceID)
	round.QuestionCount = 5
	set := r.Resolve(context.Background(), round, &model.Campaign{CompanyID: 1})

	assert.Equal(t, model.SourceQuestionBank, set.Source)
	assert.Len(t, set.Questions, 1)
}
