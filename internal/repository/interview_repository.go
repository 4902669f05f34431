package repository

import (
	"talenthub_backend/internal/model"

	"gorm.io/gorm"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{DB: db}
}

func (r *InterviewRepository) Create(i *model.InterviewInstance) error {
	return r.DB.Create(i).Error
}

func (r *InterviewRepository) FindByID(id string) (*model.InterviewInstance, error) {
	var i model.InterviewInstance
	if err := r.DB.First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InterviewRepository) Update(i *model.InterviewInstance) error {
	return r.DB.Save(i).Error
}

// CountByCandidateAndCampaign backs the campaign-level eligibility guard: any
// pre-existing instance for any round blocks auto-scheduling entirely.
func (r *InterviewRepository) CountByCandidateAndCampaign(candidateID, campaignID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.InterviewInstance{}).
		Where("candidate_id = ? AND campaign_id = ?", candidateID, campaignID).
		Count(&count).Error
	return count, err
}

func (r *InterviewRepository) ListByCandidateAndCampaign(candidateID, campaignID uint) ([]model.InterviewInstance, error) {
	var list []model.InterviewInstance
	err := r.DB.Where("candidate_id = ? AND campaign_id = ?", candidateID, campaignID).
		Order("round_number ASC").Find(&list).Error
	return list, err
}

// CountByRoundConfig tells whether a round config has live instances, which
// makes the round immutable.
func (r *InterviewRepository) CountByRoundConfig(roundConfigID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.InterviewInstance{}).
		Where("round_config_id = ?", roundConfigID).
		Count(&count).Error
	return count, err
}

// MarkCompleted performs the single authoritative check-and-set for submit.
// The guard lives in the WHERE clause; exactly one concurrent caller sees
// RowsAffected == 1, every loser gets the already-completed rejection.
func (r *InterviewRepository) MarkCompleted(id string, updates map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.InterviewInstance{}).
		Where("id = ? AND status <> ?", id, model.StatusCompleted).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// MarkStarted flips scheduled -> in_progress; first writer wins, a loser's
// RowsAffected == 0 means someone else already started it.
func (r *InterviewRepository) MarkStarted(id string, updates map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.InterviewInstance{}).
		Where("id = ? AND status = ?", id, model.StatusScheduled).
		Updates(updates)
	return res.RowsAffected, res.Error
}
