package model

// Scheduling activity outcomes.
const (
	OutcomeScheduled = "scheduled"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// SchedulingActivity is an append-only audit record of one auto-scheduling
// decision. A passive sink: nothing reads it on the hot path, and a failed
// append never fails the operation it describes.
type SchedulingActivity struct {
	BaseModel
	CandidateID uint   `gorm:"index" json:"candidateId"`
	CampaignID  uint   `gorm:"index" json:"campaignId"`
	Action      string `gorm:"size:40" json:"action"`
	Outcome     string `gorm:"size:20" json:"outcome"`
	ReasonCode  string `gorm:"size:40" json:"reasonCode"`
	Detail      string `gorm:"size:512" json:"detail"`
	Score       int    `json:"score"`
	// Snapshots are JSON-serialized so the audit trail survives later edits to
	// the live config rows.
	ConfigSnapshot string `gorm:"type:json" json:"configSnapshot"`
	ScheduledTimes string `gorm:"type:json" json:"scheduledTimes"`
}

func (SchedulingActivity) TableName() string {
	return "scheduling_activities"
}
