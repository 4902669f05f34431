package service

import (
	"context"
	"errors"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/util"

	"gorm.io/gorm"
)

type CandidateService struct {
	CandidateRepo *repository.CandidateRepository
	Scheduler     *SchedulerService
}

func NewCandidateService(candidateRepo *repository.CandidateRepository, scheduler *SchedulerService) *CandidateService {
	return &CandidateService{
		CandidateRepo: candidateRepo,
		Scheduler:     scheduler,
	}
}

type CandidateCreateRequest struct {
	CampaignID uint   `json:"campaignId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
}

func (s *CandidateService) CreateCandidate(companyID uint, req CandidateCreateRequest) (*model.Candidate, error) {
	c := &model.Candidate{
		CompanyID:  companyID,
		CampaignID: req.CampaignID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Stage:      model.StageApplied,
	}
	if err := s.CandidateRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CandidateService) GetCandidate(id uint) (*model.Candidate, error) {
	c, err := s.CandidateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CandidateService) ListByCampaign(campaignID uint, page, limit int) ([]model.Candidate, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.CandidateRepo.ListByCampaign(campaignID, page, limit)
}

// RecordResumeScore stores the externally computed resume score and, when the
// score arriving is the triggering event, kicks off auto-scheduling. The
// scheduler result rides along so callers see whether interviews were created.
func (s *CandidateService) RecordResumeScore(ctx context.Context, candidateID uint, score int) (*model.Candidate, *ScheduleResult, error) {
	c, err := s.GetCandidate(candidateID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.CandidateRepo.SetResumeScore(candidateID, score); err != nil {
		return nil, nil, err
	}
	c.ResumeScore = &score

	result, err := s.Scheduler.AutoSchedule(ctx, candidateID, c.CampaignID, score, nil)
	if err != nil {
		return c, nil, err
	}
	return c, result, nil
}
