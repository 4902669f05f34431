package repository

import (
	"talenthub_backend/internal/model"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	DB *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) Create(c *model.Candidate) error {
	return r.DB.Create(c).Error
}

func (r *CandidateRepository) FindByID(id uint) (*model.Candidate, error) {
	var c model.Candidate
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindInCampaign returns the candidate only if they belong to the campaign.
func (r *CandidateRepository) FindInCampaign(candidateID, campaignID uint) (*model.Candidate, error) {
	var c model.Candidate
	err := r.DB.Where("id = ? AND campaign_id = ?", candidateID, campaignID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidateRepository) ListByCampaign(campaignID uint, page, limit int) ([]model.Candidate, int64, error) {
	var candidates []model.Candidate
	var total int64
	q := r.DB.Model(&model.Candidate{}).Where("campaign_id = ?", campaignID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&candidates).Error
	return candidates, total, err
}

func (r *CandidateRepository) Update(c *model.Candidate) error {
	return r.DB.Save(c).Error
}

// UpdateStage moves a candidate through the hiring pipeline.
func (r *CandidateRepository) UpdateStage(candidateID uint, stage model.CandidateStage) error {
	return r.DB.Model(&model.Candidate{}).Where("id = ?", candidateID).
		Update("stage", stage).Error
}

// SetResumeScore records the externally computed resume score.
func (r *CandidateRepository) SetResumeScore(candidateID uint, score int) error {
	return r.DB.Model(&model.Candidate{}).Where("id = ?", candidateID).
		Update("resume_score", score).Error
}
