package model

import "encoding/json"

// QuestionCollection is a company-scoped, reusable question bank.
type QuestionCollection struct {
	UUIDBase
	CompanyID   uint   `gorm:"index" json:"companyId"`
	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (QuestionCollection) TableName() string {
	return "question_collections"
}

// BankQuestion is one curated question inside a collection.
type BankQuestion struct {
	UUIDBase
	CollectionID  string          `gorm:"index;type:varchar(36)" json:"collectionId"`
	CompanyID     uint            `gorm:"index" json:"companyId"`
	InterviewType InterviewType   `gorm:"size:20;index" json:"interviewType"`
	Difficulty    string          `gorm:"size:20;index" json:"difficulty"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Options       json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	CorrectOption string          `gorm:"size:10" json:"-"`
	Explanation   string          `gorm:"type:text" json:"-"`
	Topic         string          `gorm:"size:100" json:"topic"`
}

func (BankQuestion) TableName() string {
	return "bank_questions"
}
