package service

import (
	"context"
	"testing"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordResumeScoreTriggersScheduling(t *testing.T) {
	f := newFixture(t, 2, enabledConfig(70))
	scheduler := newScheduler(f.db, nil)
	s := NewCandidateService(repository.NewCandidateRepository(f.db), scheduler)

	candidate, result, err := s.RecordResumeScore(context.Background(), f.candidate.ID, 85)
	require.NoError(t, err)
	require.NotNil(t, candidate.ResumeScore)
	assert.Equal(t, 85, *candidate.ResumeScore)
	require.NotNil(t, result)
	assert.True(t, result.Scheduled)
	assert.Len(t, result.Interviews, 2)
}

func TestRecordResumeScoreBelowThreshold(t *testing.T) {
	f := newFixture(t, 2, enabledConfig(70))
	scheduler := newScheduler(f.db, nil)
	s := NewCandidateService(repository.NewCandidateRepository(f.db), scheduler)

	// the score is stored even when scheduling is rejected
	candidate, result, err := s.RecordResumeScore(context.Background(), f.candidate.ID, 40)
	require.NoError(t, err)
	require.NotNil(t, candidate.ResumeScore)
	assert.Equal(t, 40, *candidate.ResumeScore)
	assert.False(t, result.Scheduled)
	assert.Equal(t, ReasonBelowThreshold, result.ReasonCode)

	var count int64
	require.NoError(t, f.db.Model(&model.InterviewInstance{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordResumeScoreUnknownCandidate(t *testing.T) {
	f := newFixture(t, 1, nil)
	scheduler := newScheduler(f.db, nil)
	s := NewCandidateService(repository.NewCandidateRepository(f.db), scheduler)

	_, _, err := s.RecordResumeScore(context.Background(), 9999, 80)
	assert.ErrorIs(t, err, util.ErrCandidateNotFound)
}
