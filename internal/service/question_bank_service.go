package service

import (
	"encoding/json"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
)

type QuestionBankService struct {
	BankRepo *repository.QuestionBankRepository
}

func NewQuestionBankService(bankRepo *repository.QuestionBankRepository) *QuestionBankService {
	return &QuestionBankService{BankRepo: bankRepo}
}

type CollectionCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *QuestionBankService) CreateCollection(companyID uint, req CollectionCreateRequest) (*model.QuestionCollection, error) {
	c := &model.QuestionCollection{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.BankRepo.CreateCollection(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *QuestionBankService) ListCollections(companyID uint) ([]model.QuestionCollection, error) {
	return s.BankRepo.ListCollections(companyID)
}

type BankQuestionRequest struct {
	CollectionID  string              `json:"collectionId" binding:"required"`
	InterviewType model.InterviewType `json:"interviewType" binding:"required"`
	Difficulty    string              `json:"difficulty"`
	Content       string              `json:"content" binding:"required"`
	Options       json.RawMessage     `json:"options"`
	CorrectOption string              `json:"correctOption"`
	Explanation   string              `json:"explanation"`
	Topic         string              `json:"topic"`
}

func (s *QuestionBankService) AddQuestion(companyID uint, req BankQuestionRequest) (*model.BankQuestion, error) {
	if _, err := s.BankRepo.FindCollection(req.CollectionID); err != nil {
		return nil, err
	}

	q := &model.BankQuestion{
		CollectionID:  req.CollectionID,
		CompanyID:     companyID,
		InterviewType: req.InterviewType,
		Difficulty:    req.Difficulty,
		Content:       req.Content,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Explanation:   req.Explanation,
		Topic:         req.Topic,
	}
	if q.Difficulty == "" {
		q.Difficulty = "medium"
	}
	if err := s.BankRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionBankService) DeleteQuestion(id string) error {
	return s.BankRepo.DeleteQuestion(id)
}
