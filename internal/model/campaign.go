package model

import "time"

type InterviewType string

const (
	TypeBehavioral InterviewType = "behavioral"
	TypeMCQ        InterviewType = "mcq"
	TypeCoding     InterviewType = "coding"
	TypeCombo      InterviewType = "combo"
)

// swagger:model Campaign
type Campaign struct {
	BaseModel
	CompanyID   uint       `gorm:"index" json:"companyId"`
	OwnerID     uint       `gorm:"index" json:"ownerId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Role        string     `gorm:"size:150" json:"role"`
	Description string     `gorm:"type:text" json:"description"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignRoundConfig is one interview round within a campaign. Round numbers
// are 1-based and unique within the campaign. A round becomes immutable once a
// live interview instance references it.
type CampaignRoundConfig struct {
	BaseModel
	CampaignID       uint          `gorm:"uniqueIndex:uidx_campaign_round" json:"campaignId"`
	RoundNumber      int           `gorm:"uniqueIndex:uidx_campaign_round;not null" json:"roundNumber"`
	Name             string        `gorm:"size:150;not null" json:"name"`
	InterviewType    InterviewType `gorm:"size:20;not null" json:"interviewType"`
	TimeLimitMinutes int           `gorm:"default:30" json:"timeLimitMinutes"`
	Difficulty       string        `gorm:"size:20;default:'medium'" json:"difficulty"`
	QuestionCount    int           `gorm:"default:5" json:"questionCount"`
	// QuestionSourceID references a question collection by UUID. Nullable; a
	// missing or malformed value sends the resolver to its fallback tiers.
	QuestionSourceID *string `gorm:"size:36" json:"questionSourceId,omitempty"`
}

func (CampaignRoundConfig) TableName() string {
	return "campaign_round_configs"
}

// AutoScheduleConfig is the per-campaign auto-scheduling policy. Read-only to
// the scheduling engine; edited only through the campaign owner surface.
type AutoScheduleConfig struct {
	BaseModel
	CampaignID         uint   `gorm:"uniqueIndex" json:"campaignId"`
	Enabled            bool   `gorm:"default:false" json:"enabled"`
	ScoreThreshold     int    `gorm:"default:70" json:"scoreThreshold"` // 0-100
	SchedulingDelayHrs int    `gorm:"default:24" json:"schedulingDelayHours"`
	RoundIntervalHrs   int    `gorm:"default:24" json:"roundIntervalHours"` // >= 1
	DefaultStartTime   string `gorm:"size:5;default:'10:00'" json:"defaultStartTime"`
	// Timezone is advisory metadata only. Schedule arithmetic deliberately
	// runs on the instant as given; see service.GenerateSchedule.
	Timezone      string `gorm:"size:64;default:'UTC'" json:"timezone"`
	NotifyByEmail bool   `gorm:"default:true" json:"notifyByEmail"`
}

func (AutoScheduleConfig) TableName() string {
	return "auto_schedule_configs"
}
