package service

import (
	"errors"
	"fmt"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"

	"gorm.io/gorm"
)

// Machine-readable rejection reasons. Expected outcomes, not faults: the API
// layer renders them, nothing retries them.
const (
	ReasonDisabled         = "auto_scheduling_disabled"
	ReasonBelowThreshold   = "below_threshold"
	ReasonUnknownCandidate = "candidate_not_in_campaign"
	ReasonAlreadyScheduled = "already_scheduled"
	ReasonNoRounds         = "no_rounds_configured"
)

// EligibilityResult is the gate decision. When Eligible, Rounds carries the
// campaign's round configs sorted by round number, ready for the scheduler.
type EligibilityResult struct {
	Eligible   bool                        `json:"eligible"`
	ReasonCode string                      `json:"reasonCode,omitempty"`
	Detail     string                      `json:"detail,omitempty"`
	Rounds     []model.CampaignRoundConfig `json:"-"`
}

func ineligible(code, detail string) *EligibilityResult {
	return &EligibilityResult{Eligible: false, ReasonCode: code, Detail: detail}
}

type EligibilityService struct {
	CandidateRepo *repository.CandidateRepository
	CampaignRepo  *repository.CampaignRepository
	InterviewRepo *repository.InterviewRepository
}

func NewEligibilityService(
	candidateRepo *repository.CandidateRepository,
	campaignRepo *repository.CampaignRepository,
	interviewRepo *repository.InterviewRepository,
) *EligibilityService {
	return &EligibilityService{
		CandidateRepo: candidateRepo,
		CampaignRepo:  campaignRepo,
		InterviewRepo: interviewRepo,
	}
}

// Evaluate runs the gate checks in order and short-circuits on the first
// failure. The returned error is reserved for infrastructure trouble; every
// business outcome is a result.
func (s *EligibilityService) Evaluate(candidateID, campaignID uint, score int, cfg *model.AutoScheduleConfig) (*EligibilityResult, error) {
	// 1. Config must be enabled.
	if cfg == nil || !cfg.Enabled {
		return ineligible(ReasonDisabled, "auto-scheduling is disabled for this campaign"), nil
	}

	// 2. Threshold gate, boundary inclusive.
	if score < cfg.ScoreThreshold {
		return ineligible(ReasonBelowThreshold,
			fmt.Sprintf("score %d is below the threshold %d", score, cfg.ScoreThreshold)), nil
	}

	// 3. Candidate must exist and belong to the campaign.
	if _, err := s.CandidateRepo.FindInCampaign(candidateID, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ineligible(ReasonUnknownCandidate,
				fmt.Sprintf("candidate %d does not belong to campaign %d", candidateID, campaignID)), nil
		}
		return nil, err
	}

	// 4. Campaign-level duplicate guard: an instance for any round blocks the
	// whole run.
	count, err := s.InterviewRepo.CountByCandidateAndCampaign(candidateID, campaignID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return ineligible(ReasonAlreadyScheduled,
			"interviews already exist for this candidate in this campaign"), nil
	}

	// 5. There must be something to schedule.
	rounds, err := s.CampaignRepo.RoundConfigs(campaignID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return ineligible(ReasonNoRounds, "campaign has no interview rounds configured"), nil
	}

	return &EligibilityResult{Eligible: true, Rounds: rounds}, nil
}
