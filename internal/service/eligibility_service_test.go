package service

import (
	"testing"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEligibility(db *gorm.DB) *EligibilityService {
	return NewEligibilityService(
		repository.NewCandidateRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewInterviewRepository(db),
	)
}

func TestEvaluateDisabledConfig(t *testing.T) {
	f := newFixture(t, 2, nil)
	e := newEligibility(f.db)

	disabled := enabledConfig(70)
	disabled.Enabled = false

	result, err := e.Evaluate(f.candidate.ID, f.campaign.ID, 90, disabled)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonDisabled, result.ReasonCode)

	// a missing config behaves the same as a disabled one
	result, err = e.Evaluate(f.candidate.ID, f.campaign.ID, 90, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonDisabled, result.ReasonCode)
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	f := newFixture(t, 2, nil)
	e := newEligibility(f.db)
	cfg := enabledConfig(70)

	result, err := e.Evaluate(f.candidate.ID, f.campaign.ID, 69, cfg)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonBelowThreshold, result.ReasonCode)

	// boundary is inclusive
	result, err = e.Evaluate(f.candidate.ID, f.campaign.ID, 70, cfg)
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Len(t, result.Rounds, 2)
}

func TestEvaluateCandidateNotInCampaign(t *testing.T) {
	f := newFixture(t, 1, nil)
	e := newEligibility(f.db)

	other := &model.Campaign{CompanyID: 1, OwnerID: 1, Title: "Other"}
	require.NoError(t, f.db.Create(other).Error)

	result, err := e.Evaluate(f.candidate.ID, other.ID, 90, enabledConfig(70))
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonUnknownCandidate, result.ReasonCode)
}

func TestEvaluateAlreadyScheduled(t *testing.T) {
	f := newFixture(t, 2, nil)
	e := newEligibility(f.db)

	// one instance for any round blocks the whole campaign
	inst := model.NewCampaignInterview(f.candidate.ID, f.campaign.ID, &f.rounds[0], f.rounds[0].CreatedAt)
	require.NoError(t, f.db.Create(inst).Error)

	result, err := e.Evaluate(f.candidate.ID, f.campaign.ID, 90, enabledConfig(70))
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonAlreadyScheduled, result.ReasonCode)
}

func TestEvaluateNoRoundsConfigured(t *testing.T) {
	f := newFixture(t, 0, nil)
	e := newEligibility(f.db)

	result, err := e.Evaluate(f.candidate.ID, f.campaign.ID, 90, enabledConfig(70))
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonNoRounds, result.ReasonCode)
}
