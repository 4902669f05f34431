package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/util"
	"talenthub_backend/pkg/logger"
	"talenthub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScheduleResult is the outcome of one auto-scheduling invocation. A rejection
// is a normal outcome carried in the result; only infrastructure trouble
// surfaces as an error.
type ScheduleResult struct {
	Scheduled  bool                      `json:"scheduled"`
	ReasonCode string                    `json:"reasonCode,omitempty"`
	Detail     string                    `json:"detail,omitempty"`
	Interviews []model.InterviewInstance `json:"interviews,omitempty"`
	// Warning carries non-fatal follow-up failures, currently only email
	// delivery. The interviews are the source of truth; a missed email is
	// recoverable by resend.
	Warning string `json:"warning,omitempty"`
}

type SchedulerService struct {
	DB            *gorm.DB
	CandidateRepo *repository.CandidateRepository
	CampaignRepo  *repository.CampaignRepository
	InterviewRepo *repository.InterviewRepository
	ActivityRepo  *repository.ActivityLogRepository
	Eligibility   *EligibilityService
	Resolver      *QuestionResolver
	Notifier      Notifier
	BaseURL       string
}

func NewSchedulerService(
	db *gorm.DB,
	candidateRepo *repository.CandidateRepository,
	campaignRepo *repository.CampaignRepository,
	interviewRepo *repository.InterviewRepository,
	activityRepo *repository.ActivityLogRepository,
	eligibility *EligibilityService,
	resolver *QuestionResolver,
	notifier Notifier,
	baseURL string,
) *SchedulerService {
	return &SchedulerService{
		DB:            db,
		CandidateRepo: candidateRepo,
		CampaignRepo:  campaignRepo,
		InterviewRepo: interviewRepo,
		ActivityRepo:  activityRepo,
		Eligibility:   eligibility,
		Resolver:      resolver,
		Notifier:      notifier,
		BaseURL:       baseURL,
	}
}

// AutoSchedule creates one interview instance per configured round, exactly
// once per (candidate, campaign). The batch insert is atomic: either every
// round's instance exists afterwards or none do.
func (s *SchedulerService) AutoSchedule(ctx context.Context, candidateID, campaignID uint, score int, thresholdOverride *int) (*ScheduleResult, error) {
	cfg, err := s.CampaignRepo.AutoScheduleConfig(campaignID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cfg = nil // no config behaves as disabled
	}
	if cfg != nil && thresholdOverride != nil {
		override := *cfg
		override.ScoreThreshold = *thresholdOverride
		cfg = &override
	}

	elig, err := s.Eligibility.Evaluate(candidateID, campaignID, score, cfg)
	if err != nil {
		return nil, err
	}
	if !elig.Eligible {
		s.recordDecision(candidateID, campaignID, model.OutcomeRejected, elig.ReasonCode, elig.Detail, score, cfg, nil)
		return &ScheduleResult{Scheduled: false, ReasonCode: elig.ReasonCode, Detail: elig.Detail}, nil
	}

	candidate, err := s.CandidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, err
	}
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, err
	}

	slots := GenerateSchedule(time.Now(), cfg, len(elig.Rounds))

	instances := make([]model.InterviewInstance, 0, len(elig.Rounds))
	for i, round := range elig.Rounds {
		r := round
		set := s.Resolver.Resolve(ctx, &r, campaign)
		questionsJSON, err := json.Marshal(set.Questions)
		if err != nil {
			return nil, err
		}

		inst := model.NewCampaignInterview(candidateID, campaignID, &r, slots[i])
		inst.ID = model.GenerateUUID()
		inst.Questions = string(questionsJSON)
		inst.QuestionSource = set.Source
		resolvedAt := set.ResolvedAt
		inst.ResolvedAt = &resolvedAt
		inst.AccessLink = BuildAccessLink(s.BaseURL, inst.ID, candidate.Email)
		instances = append(instances, *inst)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&instances).Error; err != nil {
			return err
		}
		return tx.Model(&model.Candidate{}).Where("id = ?", candidateID).
			Update("stage", model.StageInterviewInProgress).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			// A concurrent invocation won the race past the eligibility
			// check. Same outcome as a sequential duplicate.
			detail := "interviews already exist for this candidate in this campaign"
			s.recordDecision(candidateID, campaignID, model.OutcomeRejected, ReasonAlreadyScheduled, detail, score, cfg, nil)
			return &ScheduleResult{Scheduled: false, ReasonCode: ReasonAlreadyScheduled, Detail: detail}, nil
		}
		s.recordDecision(candidateID, campaignID, model.OutcomeFailed, "persistence_failure", err.Error(), score, cfg, slots)
		return nil, fmt.Errorf("%w: %v", util.ErrTransientPersist, err)
	}

	result := &ScheduleResult{Scheduled: true, Interviews: instances}

	if cfg.NotifyByEmail && s.Notifier != nil {
		details := ScheduleDetails{CampaignTitle: campaign.Title}
		for _, inst := range instances {
			name := ""
			for _, r := range elig.Rounds {
				if r.RoundNumber == inst.RoundNumber {
					name = r.Name
				}
			}
			details.Rounds = append(details.Rounds, ScheduledRound{
				RoundNumber: inst.RoundNumber,
				Name:        name,
				ScheduledAt: inst.ScheduledAt,
				AccessLink:  inst.AccessLink,
			})
		}
		if err := s.Notifier.SendInterviewScheduledEmail(ctx, candidate, details); err != nil {
			logger.Log.Warn("interview scheduled email failed",
				zap.Uint("candidateId", candidateID), zap.Error(err))
			result.Warning = "notification email could not be sent"
		}
	}

	s.recordDecision(candidateID, campaignID, model.OutcomeScheduled, "", "", score, cfg, slots)
	return result, nil
}

// recordDecision appends the decision to the activity log and the decision
// counter. Best effort on both: audit trouble never fails scheduling.
func (s *SchedulerService) recordDecision(candidateID, campaignID uint, outcome, reasonCode, detail string, score int, cfg *model.AutoScheduleConfig, slots []time.Time) {
	monitoring.AutoScheduleDecisions.WithLabelValues(outcome, reasonCode).Inc()

	cfgJSON := ""
	if cfg != nil {
		if b, err := json.Marshal(cfg); err == nil {
			cfgJSON = string(b)
		}
	}
	slotsJSON := ""
	if len(slots) > 0 {
		if b, err := json.Marshal(slots); err == nil {
			slotsJSON = string(b)
		}
	}

	entry := &model.SchedulingActivity{
		CandidateID:    candidateID,
		CampaignID:     campaignID,
		Action:         "auto_schedule",
		Outcome:        outcome,
		ReasonCode:     reasonCode,
		Detail:         detail,
		Score:          score,
		ConfigSnapshot: cfgJSON,
		ScheduledTimes: slotsJSON,
	}
	if err := s.ActivityRepo.Append(entry); err != nil {
		logger.Log.Error("failed to append scheduling activity",
			zap.Uint("candidateId", candidateID), zap.Error(err))
	}
}

// BuildAccessLink renders the persisted interview entry link. The shape is a
// compatibility contract with existing candidate emails; the raw email as the
// sole credential is a known weakness, and a signed token should replace the
// value (not the parameter) when that changes.
func BuildAccessLink(baseURL, interviewID, email string) string {
	return fmt.Sprintf("%s/candidate/interview/%s/lobby?email=%s",
		strings.TrimSuffix(baseURL, "/"), interviewID, url.QueryEscape(email))
}

// isDuplicateKey recognizes the unique-index violation raised when two
// invocations race past the eligibility check. GORM translates most drivers;
// the string check covers the rest.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
