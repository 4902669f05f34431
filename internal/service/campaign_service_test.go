package service

import (
	"testing"
	"time"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCampaignService(db *gorm.DB) *CampaignService {
	return NewCampaignService(
		repository.NewCampaignRepository(db),
		repository.NewInterviewRepository(db),
	)
}

func TestCreateCampaignSeedsDisabledConfig(t *testing.T) {
	db := newTestDB(t)
	s := newCampaignService(db)

	campaign, err := s.CreateCampaign(1, 1, CampaignCreateRequest{
		Title: "Platform Engineer 2026",
		Role:  "Platform Engineer",
	})
	require.NoError(t, err)

	var cfg model.AutoScheduleConfig
	require.NoError(t, db.Where("campaign_id = ?", campaign.ID).First(&cfg).Error)
	assert.False(t, cfg.Enabled, "new campaigns start with auto-scheduling off")
	assert.Equal(t, 70, cfg.ScoreThreshold)
	assert.Equal(t, "10:00", cfg.DefaultStartTime)
}

func TestRoundConfigDefaults(t *testing.T) {
	f := newFixture(t, 0, nil)
	s := newCampaignService(f.db)

	rc, err := s.AddRoundConfig(f.campaign.ID, RoundConfigRequest{
		RoundNumber:   1,
		Name:          "Screening",
		InterviewType: model.TypeMCQ,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, rc.TimeLimitMinutes)
	assert.Equal(t, "medium", rc.Difficulty)
	assert.Equal(t, 5, rc.QuestionCount)
}

func TestRoundConfigImmutableOnceLive(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newCampaignService(f.db)
	round := f.rounds[0]

	// mutable before any instance exists
	updated, err := s.UpdateRoundConfig(f.campaign.ID, round.ID, RoundConfigRequest{
		RoundNumber:   1,
		Name:          "Renamed",
		InterviewType: model.TypeBehavioral,
		QuestionCount: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	inst := model.NewCampaignInterview(f.candidate.ID, f.campaign.ID, &round, time.Now().Add(24*time.Hour))
	require.NoError(t, f.db.Create(inst).Error)

	_, err = s.UpdateRoundConfig(f.campaign.ID, round.ID, RoundConfigRequest{
		RoundNumber:   1,
		Name:          "Renamed Again",
		InterviewType: model.TypeBehavioral,
	})
	assert.ErrorIs(t, err, util.ErrRoundHasInstances)

	err = s.DeleteRoundConfig(f.campaign.ID, round.ID)
	assert.ErrorIs(t, err, util.ErrRoundHasInstances)
}

func TestRoundConfigWrongCampaignRejected(t *testing.T) {
	f := newFixture(t, 1, nil)
	s := newCampaignService(f.db)

	other, err := s.CreateCampaign(1, 1, CampaignCreateRequest{Title: "Other"})
	require.NoError(t, err)

	_, err = s.UpdateRoundConfig(other.ID, f.rounds[0].ID, RoundConfigRequest{
		RoundNumber:   1,
		Name:          "X",
		InterviewType: model.TypeBehavioral,
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestUpdateAutoScheduleConfigUpserts(t *testing.T) {
	f := newFixture(t, 0, nil)
	s := newCampaignService(f.db)

	cfg, err := s.UpdateAutoScheduleConfig(f.campaign.ID, AutoScheduleConfigRequest{
		Enabled:            true,
		ScoreThreshold:     80,
		SchedulingDelayHrs: 48,
		RoundIntervalHrs:   24,
		DefaultStartTime:   "09:30",
		Timezone:           "UTC",
		NotifyByEmail:      true,
	})
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 80, cfg.ScoreThreshold)

	// a second update edits the same row
	cfg, err = s.UpdateAutoScheduleConfig(f.campaign.ID, AutoScheduleConfigRequest{
		Enabled:        false,
		ScoreThreshold: 60,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&model.AutoScheduleConfig{}).
		Where("campaign_id = ?", f.campaign.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 60, cfg.ScoreThreshold)
}
