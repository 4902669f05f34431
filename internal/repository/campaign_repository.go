package repository

import (
	"talenthub_backend/internal/model"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	DB *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	return r.DB.Create(c).Error
}

func (r *CampaignRepository) FindByID(id uint) (*model.Campaign, error) {
	var c model.Campaign
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListByCompany(companyID uint) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	err := r.DB.Where("company_id = ?", companyID).Order("id DESC").Find(&campaigns).Error
	return campaigns, err
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
	return r.DB.Save(c).Error
}

// Round configs

func (r *CampaignRepository) CreateRoundConfig(rc *model.CampaignRoundConfig) error {
	return r.DB.Create(rc).Error
}

func (r *CampaignRepository) FindRoundConfig(id uint) (*model.CampaignRoundConfig, error) {
	var rc model.CampaignRoundConfig
	if err := r.DB.First(&rc, id).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

// RoundConfigs returns a campaign's rounds ordered by round number ascending,
// the order the scheduler creates instances in.
func (r *CampaignRepository) RoundConfigs(campaignID uint) ([]model.CampaignRoundConfig, error) {
	var rounds []model.CampaignRoundConfig
	err := r.DB.Where("campaign_id = ?", campaignID).
		Order("round_number ASC").Find(&rounds).Error
	return rounds, err
}

func (r *CampaignRepository) UpdateRoundConfig(rc *model.CampaignRoundConfig) error {
	return r.DB.Save(rc).Error
}

func (r *CampaignRepository) DeleteRoundConfig(id uint) error {
	return r.DB.Delete(&model.CampaignRoundConfig{}, id).Error
}

// Auto-schedule config

func (r *CampaignRepository) AutoScheduleConfig(campaignID uint) (*model.AutoScheduleConfig, error) {
	var cfg model.AutoScheduleConfig
	err := r.DB.Where("campaign_id = ?", campaignID).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *CampaignRepository) SaveAutoScheduleConfig(cfg *model.AutoScheduleConfig) error {
	return r.DB.Save(cfg).Error
}
