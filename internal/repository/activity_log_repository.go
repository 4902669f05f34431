package repository

import (
	"talenthub_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Append(a *model.SchedulingActivity) error {
	return r.DB.Create(a).Error
}

func (r *ActivityLogRepository) ListByCandidate(candidateID uint, limit int) ([]model.SchedulingActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.SchedulingActivity
	err := r.DB.Where("candidate_id = ?", candidateID).
		Order("id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
