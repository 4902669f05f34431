package model

import (
	"encoding/json"
	"time"
)

type InterviewStatus string

const (
	StatusScheduled  InterviewStatus = "scheduled"
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

// InterviewKind discriminates the legacy flavors of "an interview a candidate
// takes". They used to live in three separate tables; the adapter constructors
// below fold each flavor into this one entity before it reaches the state
// machine.
type InterviewKind string

const (
	KindDirect   InterviewKind = "direct"
	KindCoding   InterviewKind = "coding"
	KindCampaign InterviewKind = "campaign"
)

// QuestionSource tags which resolver tier produced an interview's question set.
const (
	SourceQuestionBank    = "question_bank"
	SourceAIFallback      = "ai_fallback"
	SourceDefaultFallback = "default_fallback"
)

// swagger:model InterviewInstance
type InterviewInstance struct {
	UUIDBase
	CandidateID uint `gorm:"uniqueIndex:uidx_candidate_campaign_round" json:"candidateId"`
	CampaignID  uint `gorm:"uniqueIndex:uidx_candidate_campaign_round" json:"campaignId"`
	// RoundNumber completes the uniqueness guard: at most one non-superseded
	// instance per (candidate, campaign, round). Direct and coding interviews
	// use round 1. The batch insert relies on this index to detect concurrent
	// scheduling runs.
	RoundNumber   int             `gorm:"uniqueIndex:uidx_candidate_campaign_round;not null" json:"roundNumber"`
	RoundConfigID *uint           `gorm:"index" json:"roundConfigId,omitempty"`
	Kind          InterviewKind   `gorm:"size:20;default:'campaign'" json:"kind"`
	InterviewType InterviewType   `gorm:"size:20;not null" json:"interviewType"`
	Status        InterviewStatus `gorm:"size:20;default:'scheduled';index" json:"status"`

	ScheduledAt     time.Time  `json:"scheduledAt"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	DurationSeconds int        `json:"durationSeconds"`

	Score    int  `json:"score"`
	MaxScore int  `json:"maxScore"`
	Passed   bool `gorm:"default:false" json:"passed"`

	// Answers holds the serialized answer payload (a []AnswerRecord). Opaque
	// to storage; frozen once the interview completes.
	Answers string `gorm:"type:json" json:"-"`

	// Question snapshot, frozen at resolution time so later edits to the bank
	// never alter an already-resolved interview.
	Questions      string     `gorm:"type:json" json:"-"`
	QuestionSource string     `gorm:"size:30" json:"questionSource"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`

	AccessLink string `gorm:"size:512" json:"accessLink"`
}

func (InterviewInstance) TableName() string {
	return "interview_instances"
}

// Resolved reports whether a question set has been attached yet. Instances
// created by the scheduler are resolved eagerly; instances created through the
// legacy direct/coding paths resolve lazily on first fetch.
func (i *InterviewInstance) Resolved() bool {
	return i.ResolvedAt != nil && i.Questions != ""
}

// ResolvedQuestionSet is the per-round question payload produced by the
// resolver cascade. Embedded into the instance, never persisted on its own.
type ResolvedQuestionSet struct {
	Questions  []json.RawMessage `json:"questions"`
	Source     string            `json:"source"`
	ResolvedAt time.Time         `json:"resolvedAt"`
}

// NewCampaignInterview adapts a campaign round into the common entity.
func NewCampaignInterview(candidateID, campaignID uint, round *CampaignRoundConfig, scheduledAt time.Time) *InterviewInstance {
	rcID := round.ID
	return &InterviewInstance{
		CandidateID:   candidateID,
		CampaignID:    campaignID,
		RoundNumber:   round.RoundNumber,
		RoundConfigID: &rcID,
		Kind:          KindCampaign,
		InterviewType: round.InterviewType,
		Status:        StatusScheduled,
		ScheduledAt:   scheduledAt,
	}
}

// NewDirectInterview adapts the legacy "direct" flavor: a single ad hoc round
// with no campaign round config behind it.
func NewDirectInterview(candidateID, campaignID uint, interviewType InterviewType, scheduledAt time.Time) *InterviewInstance {
	return &InterviewInstance{
		CandidateID:   candidateID,
		CampaignID:    campaignID,
		RoundNumber:   1,
		Kind:          KindDirect,
		InterviewType: interviewType,
		Status:        StatusScheduled,
		ScheduledAt:   scheduledAt,
	}
}

// NewCodingInterview adapts the legacy coding-test flavor.
func NewCodingInterview(candidateID, campaignID uint, scheduledAt time.Time) *InterviewInstance {
	return &InterviewInstance{
		CandidateID:   candidateID,
		CampaignID:    campaignID,
		RoundNumber:   1,
		Kind:          KindCoding,
		InterviewType: TypeCoding,
		Status:        StatusScheduled,
		ScheduledAt:   scheduledAt,
	}
}
