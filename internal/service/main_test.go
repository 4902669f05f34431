package service

import (
	"os"
	"testing"

	"talenthub_backend/internal/model"
	"talenthub_backend/pkg/database"
	"talenthub_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory sqlite: every pooled connection is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db        *gorm.DB
	campaign  *model.Campaign
	candidate *model.Candidate
	rounds    []model.CampaignRoundConfig
	config    *model.AutoScheduleConfig
}

func newFixture(t *testing.T, roundCount int, cfg *model.AutoScheduleConfig) *fixture {
	t.Helper()
	db := newTestDB(t)

	campaign := &model.Campaign{
		CompanyID: 1,
		OwnerID:   1,
		Title:     "Backend Engineer 2026",
		Role:      "Backend Engineer",
	}
	require.NoError(t, db.Create(campaign).Error)

	candidate := &model.Candidate{
		CompanyID:  1,
		CampaignID: campaign.ID,
		Name:       "Ada Lovelace",
		Email:      "ada+test@example.com",
		Stage:      model.StageScreening,
	}
	require.NoError(t, db.Create(candidate).Error)

	rounds := make([]model.CampaignRoundConfig, 0, roundCount)
	for i := 1; i <= roundCount; i++ {
		round := model.CampaignRoundConfig{
			CampaignID:    campaign.ID,
			RoundNumber:   i,
			Name:          "Round " + string(rune('0'+i)),
			InterviewType: model.TypeBehavioral,
			Difficulty:    "medium",
			QuestionCount: 3,
		}
		require.NoError(t, db.Create(&round).Error)
		rounds = append(rounds, round)
	}

	if cfg != nil {
		cfg.CampaignID = campaign.ID
		require.NoError(t, db.Create(cfg).Error)
	}

	return &fixture{
		db:        db,
		campaign:  campaign,
		candidate: candidate,
		rounds:    rounds,
		config:    cfg,
	}
}

func enabledConfig(threshold int) *model.AutoScheduleConfig {
	return &model.AutoScheduleConfig{
		Enabled:            true,
		ScoreThreshold:     threshold,
		SchedulingDelayHrs: 24,
		RoundIntervalHrs:   24,
		DefaultStartTime:   "10:00",
		Timezone:           "UTC",
		NotifyByEmail:      false,
	}
}
