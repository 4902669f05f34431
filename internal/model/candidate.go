package model

// CandidateStage is kept as a plain string column so external ATS importers
// can write stages this service does not know about.
type CandidateStage string

const (
	StageApplied             CandidateStage = "applied"
	StageScreening           CandidateStage = "screening"
	StageInterviewInProgress CandidateStage = "interview_in_progress"
	StageOffer               CandidateStage = "offer"
	StageRejected            CandidateStage = "rejected"
)

// swagger:model Candidate
type Candidate struct {
	BaseModel
	CompanyID   uint           `gorm:"index" json:"companyId"`
	CampaignID  uint           `gorm:"index" json:"campaignId"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Email       string         `gorm:"size:150;not null;index" json:"email"`
	Phone       string         `gorm:"size:40" json:"phone"`
	ResumeScore *int           `json:"resumeScore,omitempty"`
	Stage       CandidateStage `gorm:"size:40;default:'applied'" json:"stage"`
}

func (Candidate) TableName() string {
	return "candidates"
}
