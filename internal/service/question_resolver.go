package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"talenthub_backend/internal/model"
	"talenthub_backend/pkg/logger"
	"talenthub_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionBankSource is the curated question bank as seen by the resolver.
// Implemented by repository.QuestionBankRepository.
type QuestionBankSource interface {
	FetchQuestions(companyID uint, collectionID string, interviewType model.InterviewType, difficulty string) ([]model.BankQuestion, error)
}

// snapshotQuestion is the shape frozen into an interview instance.
type snapshotQuestion struct {
	ID            string          `json:"id"`
	Content       string          `json:"content"`
	Options       json.RawMessage `json:"options,omitempty"`
	CorrectOption string          `json:"correctOption,omitempty"`
	Explanation   string          `json:"explanation,omitempty"`
	Topic         string          `json:"topic,omitempty"`
}

// QuestionResolver resolves a usable question set for one round through a
// prioritized cascade: question bank, then generative fallback, then a static
// fallback that cannot fail. Resolve never returns an error and never returns
// an empty set; callers rely on that.
type QuestionResolver struct {
	Bank      QuestionBankSource
	Generator QuestionGenerator
	Cache     *redis.Client
}

const bankCacheTTL = 5 * time.Minute

func NewQuestionResolver(bank QuestionBankSource, generator QuestionGenerator, cache *redis.Client) *QuestionResolver {
	return &QuestionResolver{
		Bank:      bank,
		Generator: generator,
		Cache:     cache,
	}
}

// Resolve runs the cascade for one round. Each tier is attempted only when the
// previous one is unusable; a lower-tier result is a degraded success, not an
// error, and is distinguishable only by the Source tag.
func (r *QuestionResolver) Resolve(ctx context.Context, round *model.CampaignRoundConfig, campaign *model.Campaign) model.ResolvedQuestionSet {
	if set, ok := r.fromBank(ctx, round, campaign); ok {
		monitoring.QuestionResolutions.WithLabelValues(model.SourceQuestionBank).Inc()
		return set
	}

	if set, ok := r.fromGenerator(ctx, round, campaign); ok {
		monitoring.QuestionResolutions.WithLabelValues(model.SourceAIFallback).Inc()
		return set
	}

	monitoring.QuestionResolutions.WithLabelValues(model.SourceDefaultFallback).Inc()
	return r.staticFallback(round)
}

// fromBank attempts tier 1. Unusable when: no source ref, a ref that is not
// UUID-shaped (rejected without touching the store), or an empty filtered
// result. When the bank holds fewer than requested it returns all of them.
func (r *QuestionResolver) fromBank(ctx context.Context, round *model.CampaignRoundConfig, campaign *model.Campaign) (model.ResolvedQuestionSet, bool) {
	if round.QuestionSourceID == nil || *round.QuestionSourceID == "" {
		return model.ResolvedQuestionSet{}, false
	}
	if _, err := uuid.Parse(*round.QuestionSourceID); err != nil {
		logger.Log.Debug("question source ref is not a valid identifier, skipping bank tier",
			zap.String("sourceId", *round.QuestionSourceID))
		return model.ResolvedQuestionSet{}, false
	}

	questions, err := r.fetchBankQuestions(ctx, campaign.CompanyID, *round.QuestionSourceID, round.InterviewType, round.Difficulty)
	if err != nil {
		logger.Log.Warn("question bank fetch failed, falling through",
			zap.String("sourceId", *round.QuestionSourceID), zap.Error(err))
		return model.ResolvedQuestionSet{}, false
	}
	if len(questions) == 0 {
		return model.ResolvedQuestionSet{}, false
	}

	sampled := r.sample(questions, round.QuestionCount)
	payload := make([]json.RawMessage, 0, len(sampled))
	for _, q := range sampled {
		// The snapshot keeps grading fields; BankQuestion hides them from API
		// output, so it is re-shaped here. Candidate-facing reads sanitize.
		snap := snapshotQuestion{
			ID:            q.ID,
			Content:       q.Content,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
			Topic:         q.Topic,
		}
		b, err := json.Marshal(snap)
		if err != nil {
			continue
		}
		payload = append(payload, b)
	}
	if len(payload) == 0 {
		return model.ResolvedQuestionSet{}, false
	}

	return model.ResolvedQuestionSet{
		Questions:  payload,
		Source:     model.SourceQuestionBank,
		ResolvedAt: time.Now(),
	}, true
}

// fetchBankQuestions reads through a short-TTL redis cache so repeated
// scheduling runs against the same collection do not hammer the store. Cache
// trouble is never fatal.
func (r *QuestionResolver) fetchBankQuestions(ctx context.Context, companyID uint, collectionID string, interviewType model.InterviewType, difficulty string) ([]model.BankQuestion, error) {
	key := fmt.Sprintf("qbank:%d:%s:%s:%s", companyID, collectionID, interviewType, difficulty)

	if r.Cache != nil {
		if cached, err := r.Cache.Get(ctx, key).Result(); err == nil {
			var questions []model.BankQuestion
			if json.Unmarshal([]byte(cached), &questions) == nil {
				return questions, nil
			}
		}
	}

	questions, err := r.Bank.FetchQuestions(companyID, collectionID, interviewType, difficulty)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil && len(questions) > 0 {
		if b, err := json.Marshal(questions); err == nil {
			r.Cache.Set(ctx, key, b, bankCacheTTL)
		}
	}
	return questions, nil
}

// sample picks count questions without replacement; all of them when the bank
// holds fewer than requested.
func (r *QuestionResolver) sample(questions []model.BankQuestion, count int) []model.BankQuestion {
	if count <= 0 || count >= len(questions) {
		return questions
	}
	picked := make([]model.BankQuestion, len(questions))
	copy(picked, questions)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:count]
}

// fromGenerator attempts tier 2. Any transport or parse failure is a tier
// failure, not a resolver failure.
func (r *QuestionResolver) fromGenerator(ctx context.Context, round *model.CampaignRoundConfig, campaign *model.Campaign) (model.ResolvedQuestionSet, bool) {
	if r.Generator == nil {
		return model.ResolvedQuestionSet{}, false
	}

	questions, err := r.Generator.Generate(ctx, GenerationContext{
		Role:          campaign.Role,
		Topic:         round.Name,
		InterviewType: round.InterviewType,
		Difficulty:    round.Difficulty,
		Count:         round.QuestionCount,
	})
	if err != nil {
		logger.Log.Warn("question generation failed, using static fallback",
			zap.Uint("roundConfigId", round.ID), zap.Error(err))
		return model.ResolvedQuestionSet{}, false
	}
	if len(questions) == 0 {
		return model.ResolvedQuestionSet{}, false
	}

	return model.ResolvedQuestionSet{
		Questions:  questions,
		Source:     model.SourceAIFallback,
		ResolvedAt: time.Now(),
	}, true
}

// staticFallback is tier 3 and always succeeds: one generic question templated
// from the round's type and topic.
func (r *QuestionResolver) staticFallback(round *model.CampaignRoundConfig) model.ResolvedQuestionSet {
	content := fmt.Sprintf("Tell us about your experience relevant to %q.", round.Name)
	if round.InterviewType == model.TypeCoding {
		content = fmt.Sprintf("Describe how you would design and implement a solution for a typical %q problem, including trade-offs.", round.Name)
	}

	q := map[string]interface{}{
		"id":      model.GenerateUUID(),
		"content": content,
		"topic":   round.Name,
	}
	b, _ := json.Marshal(q)

	return model.ResolvedQuestionSet{
		Questions:  []json.RawMessage{b},
		Source:     model.SourceDefaultFallback,
		ResolvedAt: time.Now(),
	}
}
