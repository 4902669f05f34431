package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInterviewService(db *gorm.DB) *InterviewService {
	return NewInterviewService(
		db,
		repository.NewInterviewRepository(db),
		repository.NewCandidateRepository(db),
		repository.NewCampaignRepository(db),
		NewQuestionResolver(repository.NewQuestionBankRepository(db), nil, nil),
		NewCompletionScorer(),
		"https://app.example.com",
	)
}

func scheduledInstance(t *testing.T, f *fixture) *model.InterviewInstance {
	t.Helper()
	inst := model.NewCampaignInterview(f.candidate.ID, f.campaign.ID, &f.rounds[0], time.Now().Add(24*time.Hour))
	require.NoError(t, f.db.Create(inst).Error)
	return inst
}

func TestStartIsIdempotent(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)
	inst := scheduledInstance(t, f)

	first, err := s.Start(context.Background(), inst.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, first.Status)
	require.NotNil(t, first.StartedAt)

	second, err := s.Start(context.Background(), inst.ID)
	require.NoError(t, err, "starting an in-progress interview is a no-op")
	assert.Equal(t, model.StatusInProgress, second.Status)
}

func TestStartCompletedIsRejected(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)
	inst := scheduledInstance(t, f)

	_, err := s.Start(context.Background(), inst.ID)
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), inst.ID, nil, 0)
	require.NoError(t, err)

	_, err = s.Start(context.Background(), inst.ID)
	assert.ErrorIs(t, err, util.ErrRestartCompleted)
}

func TestStartUnknownInterview(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)

	_, err := s.Start(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, util.ErrInterviewNotFound)
}

func TestSaveProgressOverwrites(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)
	inst := scheduledInstance(t, f)

	// not started yet
	err := s.SaveProgress(context.Background(), inst.ID, nil, 10)
	assert.ErrorIs(t, err, util.ErrNotInProgress)

	_, err = s.Start(context.Background(), inst.ID)
	require.NoError(t, err)

	first := []model.AnswerRecord{
		{Kind: model.AnswerKindFreeText, QuestionID: "q1", Response: "draft one"},
		{Kind: model.AnswerKindFreeText, QuestionID: "q2", Response: "draft two"},
	}
	require.NoError(t, s.SaveProgress(context.Background(), inst.ID, first, 120))

	// each save replaces the whole payload
	second := []model.AnswerRecord{
		{Kind: model.AnswerKindFreeText, QuestionID: "q1", Response: "final draft"},
	}
	require.NoError(t, s.SaveProgress(context.Background(), inst.ID, second, 300))

	var stored model.InterviewInstance
	require.NoError(t, f.db.First(&stored, "id = ?", inst.ID).Error)
	answers, err := model.DecodeAnswers(stored.Answers)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "final draft", answers[0].Response)
	assert.Equal(t, model.AnswerPayloadVersion, answers[0].Version)
	assert.Equal(t, 300, stored.DurationSeconds)
}

func TestSubmitFreezesTheResult(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)
	inst := scheduledInstance(t, f)

	_, err := s.Start(context.Background(), inst.ID)
	require.NoError(t, err)

	answers := []model.AnswerRecord{
		{Kind: model.AnswerKindFreeText, QuestionID: "q1", Response: "a sufficiently long answer"},
		{Kind: model.AnswerKindFreeText, QuestionID: "q2", Response: "short"},
	}
	done, err := s.Submit(context.Background(), inst.ID, answers, 900)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
	assert.Equal(t, 1, done.Score)
	assert.Equal(t, 2, done.MaxScore)
	assert.False(t, done.Passed)
	require.NotNil(t, done.CompletedAt)

	// the second submit must not recompute anything
	better := []model.AnswerRecord{
		{Kind: model.AnswerKindFreeText, QuestionID: "q1", Response: "a sufficiently long answer"},
		{Kind: model.AnswerKindFreeText, QuestionID: "q2", Response: "another sufficiently long answer"},
	}
	_, err = s.Submit(context.Background(), inst.ID, better, 1200)
	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)

	var stored model.InterviewInstance
	require.NoError(t, f.db.First(&stored, "id = ?", inst.ID).Error)
	assert.Equal(t, 1, stored.Score, "score is frozen at first submit")
	assert.Equal(t, 900, stored.DurationSeconds)
}

func TestSubmitGradesFromSnapshot(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)
	inst := scheduledInstance(t, f)

	// frozen snapshot carries the authoritative correct option
	snapshot, err := json.Marshal([]map[string]string{
		{"id": "q1", "content": "Pick one.", "correctOption": "B"},
	})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&model.InterviewInstance{}).
		Where("id = ?", inst.ID).
		Updates(map[string]interface{}{
			"questions":       string(snapshot),
			"question_source": model.SourceQuestionBank,
			"resolved_at":     time.Now(),
		}).Error)

	_, err = s.Start(context.Background(), inst.ID)
	require.NoError(t, err)

	// client claims its own answer is the correct one; the snapshot wins
	answers := []model.AnswerRecord{
		{Kind: model.AnswerKindMCQ, QuestionID: "q1", SelectedOption: "A", CorrectOption: "A"},
	}
	done, err := s.Submit(context.Background(), inst.ID, answers, 60)
	require.NoError(t, err)
	assert.Equal(t, 0, done.Score)

	stored, err := model.DecodeAnswers(done.Answers)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "B", stored[0].CorrectOption)
}

func TestCreateDirectDuplicateRejected(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)

	_, err := s.CreateDirect(context.Background(), f.candidate.ID, f.campaign.ID, model.TypeBehavioral, time.Now().Add(48*time.Hour))
	require.NoError(t, err)

	_, err = s.CreateDirect(context.Background(), f.candidate.ID, f.campaign.ID, model.TypeCoding, time.Now().Add(72*time.Hour))
	assert.ErrorIs(t, err, util.ErrAlreadyScheduled)
}

func TestGetResolvesLazily(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newInterviewService(f.db)

	created, err := s.CreateDirect(context.Background(), f.candidate.ID, f.campaign.ID, model.TypeBehavioral, time.Now().Add(48*time.Hour))
	require.NoError(t, err)

	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.Resolved())
	assert.Equal(t, model.SourceDefaultFallback, got.QuestionSource)

	// resolution is persisted, not recomputed per read
	var stored model.InterviewInstance
	require.NoError(t, f.db.First(&stored, "id = ?", created.ID).Error)
	assert.True(t, stored.Resolved())
}

func TestSanitizedQuestionsStripGradingFields(t *testing.T) {
	snapshot, err := json.Marshal([]map[string]string{
		{"id": "q1", "content": "Pick one.", "correctOption": "B", "explanation": "because"},
	})
	require.NoError(t, err)

	inst := &model.InterviewInstance{Questions: string(snapshot)}
	sanitized := SanitizedQuestions(inst)
	require.Len(t, sanitized, 1)
	assert.Equal(t, "Pick one.", sanitized[0]["content"])
	assert.NotContains(t, sanitized[0], "correctOption")
	assert.NotContains(t, sanitized[0], "explanation")
}
