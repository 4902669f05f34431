package repository

import (
	"talenthub_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionBankRepository struct {
	DB *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) *QuestionBankRepository {
	return &QuestionBankRepository{DB: db}
}

func (r *QuestionBankRepository) CreateCollection(c *model.QuestionCollection) error {
	return r.DB.Create(c).Error
}

func (r *QuestionBankRepository) FindCollection(id string) (*model.QuestionCollection, error) {
	var c model.QuestionCollection
	if err := r.DB.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *QuestionBankRepository) ListCollections(companyID uint) ([]model.QuestionCollection, error) {
	var cols []model.QuestionCollection
	err := r.DB.Where("company_id = ?", companyID).Order("created_at DESC").Find(&cols).Error
	return cols, err
}

func (r *QuestionBankRepository) CreateQuestion(q *model.BankQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuestionBankRepository) DeleteQuestion(id string) error {
	return r.DB.Delete(&model.BankQuestion{}, "id = ?", id).Error
}

// FetchQuestions is the company-scoped bank read used by the resolver:
// collection plus interview type and difficulty filters.
func (r *QuestionBankRepository) FetchQuestions(companyID uint, collectionID string, interviewType model.InterviewType, difficulty string) ([]model.BankQuestion, error) {
	var questions []model.BankQuestion
	q := r.DB.Where("company_id = ? AND collection_id = ? AND interview_type = ?",
		companyID, collectionID, interviewType)
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	err := q.Find(&questions).Error
	return questions, err
}
