package service

import (
	"errors"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/util"

	"gorm.io/gorm"
)

type CampaignService struct {
	CampaignRepo  *repository.CampaignRepository
	InterviewRepo *repository.InterviewRepository
}

func NewCampaignService(campaignRepo *repository.CampaignRepository, interviewRepo *repository.InterviewRepository) *CampaignService {
	return &CampaignService{
		CampaignRepo:  campaignRepo,
		InterviewRepo: interviewRepo,
	}
}

type CampaignCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Role        string `json:"role"`
	Description string `json:"description"`
}

func (s *CampaignService) CreateCampaign(ownerID, companyID uint, req CampaignCreateRequest) (*model.Campaign, error) {
	campaign := &model.Campaign{
		CompanyID:   companyID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Role:        req.Role,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.CampaignRepo.Create(campaign); err != nil {
		return nil, err
	}

	// Every campaign gets a default (disabled) auto-schedule config so the
	// owner edits a row instead of creating one.
	cfg := &model.AutoScheduleConfig{
		CampaignID:         campaign.ID,
		Enabled:            false,
		ScoreThreshold:     70,
		SchedulingDelayHrs: 24,
		RoundIntervalHrs:   24,
		DefaultStartTime:   "10:00",
		Timezone:           "UTC",
		NotifyByEmail:      true,
	}
	if err := s.CampaignRepo.SaveAutoScheduleConfig(cfg); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) GetCampaign(id uint) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) ListCampaigns(companyID uint) ([]model.Campaign, error) {
	return s.CampaignRepo.ListByCompany(companyID)
}

type RoundConfigRequest struct {
	RoundNumber      int                 `json:"roundNumber" binding:"required,min=1"`
	Name             string              `json:"name" binding:"required"`
	InterviewType    model.InterviewType `json:"interviewType" binding:"required"`
	TimeLimitMinutes int                 `json:"timeLimitMinutes"`
	Difficulty       string              `json:"difficulty"`
	QuestionCount    int                 `json:"questionCount"`
	QuestionSourceID *string             `json:"questionSourceId"`
}

func (s *CampaignService) AddRoundConfig(campaignID uint, req RoundConfigRequest) (*model.CampaignRoundConfig, error) {
	if _, err := s.GetCampaign(campaignID); err != nil {
		return nil, err
	}

	rc := &model.CampaignRoundConfig{
		CampaignID:       campaignID,
		RoundNumber:      req.RoundNumber,
		Name:             req.Name,
		InterviewType:    req.InterviewType,
		TimeLimitMinutes: req.TimeLimitMinutes,
		Difficulty:       req.Difficulty,
		QuestionCount:    req.QuestionCount,
		QuestionSourceID: req.QuestionSourceID,
	}
	if rc.TimeLimitMinutes <= 0 {
		rc.TimeLimitMinutes = 30
	}
	if rc.Difficulty == "" {
		rc.Difficulty = "medium"
	}
	if rc.QuestionCount <= 0 {
		rc.QuestionCount = 5
	}

	if err := s.CampaignRepo.CreateRoundConfig(rc); err != nil {
		return nil, err
	}
	return rc, nil
}

// UpdateRoundConfig edits a round. Rejected once the round has live interview
// instances: a frozen snapshot must stay true to the config it was made from.
func (s *CampaignService) UpdateRoundConfig(campaignID, roundConfigID uint, req RoundConfigRequest) (*model.CampaignRoundConfig, error) {
	rc, err := s.CampaignRepo.FindRoundConfig(roundConfigID)
	if err != nil {
		return nil, err
	}
	if rc.CampaignID != campaignID {
		return nil, util.ErrPermissionDenied
	}

	count, err := s.InterviewRepo.CountByRoundConfig(roundConfigID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, util.ErrRoundHasInstances
	}

	rc.RoundNumber = req.RoundNumber
	rc.Name = req.Name
	rc.InterviewType = req.InterviewType
	rc.TimeLimitMinutes = req.TimeLimitMinutes
	rc.Difficulty = req.Difficulty
	rc.QuestionCount = req.QuestionCount
	rc.QuestionSourceID = req.QuestionSourceID

	if err := s.CampaignRepo.UpdateRoundConfig(rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *CampaignService) DeleteRoundConfig(campaignID, roundConfigID uint) error {
	rc, err := s.CampaignRepo.FindRoundConfig(roundConfigID)
	if err != nil {
		return err
	}
	if rc.CampaignID != campaignID {
		return util.ErrPermissionDenied
	}

	count, err := s.InterviewRepo.CountByRoundConfig(roundConfigID)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrRoundHasInstances
	}
	return s.CampaignRepo.DeleteRoundConfig(roundConfigID)
}

func (s *CampaignService) RoundConfigs(campaignID uint) ([]model.CampaignRoundConfig, error) {
	return s.CampaignRepo.RoundConfigs(campaignID)
}

type AutoScheduleConfigRequest struct {
	Enabled            bool   `json:"enabled"`
	ScoreThreshold     int    `json:"scoreThreshold" binding:"min=0,max=100"`
	SchedulingDelayHrs int    `json:"schedulingDelayHours" binding:"min=0"`
	RoundIntervalHrs   int    `json:"roundIntervalHours" binding:"min=1"`
	DefaultStartTime   string `json:"defaultStartTime"`
	Timezone           string `json:"timezone"`
	NotifyByEmail      bool   `json:"notifyByEmail"`
}

func (s *CampaignService) GetAutoScheduleConfig(campaignID uint) (*model.AutoScheduleConfig, error) {
	return s.CampaignRepo.AutoScheduleConfig(campaignID)
}

func (s *CampaignService) UpdateAutoScheduleConfig(campaignID uint, req AutoScheduleConfigRequest) (*model.AutoScheduleConfig, error) {
	cfg, err := s.CampaignRepo.AutoScheduleConfig(campaignID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cfg = &model.AutoScheduleConfig{CampaignID: campaignID}
	}

	cfg.Enabled = req.Enabled
	cfg.ScoreThreshold = req.ScoreThreshold
	cfg.SchedulingDelayHrs = req.SchedulingDelayHrs
	cfg.RoundIntervalHrs = req.RoundIntervalHrs
	if req.DefaultStartTime != "" {
		cfg.DefaultStartTime = req.DefaultStartTime
	}
	if req.Timezone != "" {
		cfg.Timezone = req.Timezone
	}
	cfg.NotifyByEmail = req.NotifyByEmail

	if err := s.CampaignRepo.SaveAutoScheduleConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
