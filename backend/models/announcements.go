package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement statuses and target audiences.
const (
	AnnouncementStatusDraft = "DRAFT"
	AnnouncementStatusSent  = "SENT"

	AudienceAll         = "ALL"
	AudienceInstructors = "INSTRUCTORS"
	AudienceLearners    = "LEARNERS"
)

type Announcement struct {
	gorm.Model
	Title          string     `gorm:"not null" json:"title"`
	Message        string     `json:"message"`
	Status         string     `gorm:"default:DRAFT" json:"status"`
	TargetAudience string     `gorm:"default:ALL" json:"targetAudience"`
	SentAt         *time.Time `json:"sentAt"`
}

// Notification is the per-user fan-out of a sent announcement. The
// notification center polls the unread count every 30 seconds.
type Notification struct {
	gorm.Model
	UserID         uint   `gorm:"not null;index" json:"userId"`
	AnnouncementID uint   `json:"announcementId"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Read           bool   `gorm:"default:false" json:"read"`
}

// Moderation decision outcomes.
const (
	DecisionApproved         = "APPROVED"
	DecisionRejected         = "REJECTED"
	DecisionChangesRequested = "CHANGES_REQUESTED"
)

// ModerationDecision records who decided what on a submitted course or
// instructor application, and why.
type ModerationDecision struct {
	gorm.Model
	TargetType string `json:"targetType"` // "course" or "application"
	TargetID   uint   `gorm:"index" json:"targetId"`
	Decision   string `json:"decision"` // APPROVED, REJECTED, CHANGES_REQUESTED
	Reason     string `json:"reason"`
	DecidedBy  uint   `json:"decidedBy"`
}
