package models

import "gorm.io/gorm"

// User roles.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleLearner    = "learner"
)

// Instructor application statuses share the moderation state machine used
// for courses: only PENDING applications can be decided.
const (
	ApplicationStatusPending          = "PENDING"
	ApplicationStatusApproved         = "APPROVED"
	ApplicationStatusRejected         = "REJECTED"
	ApplicationStatusChangesRequested = "CHANGES_REQUESTED"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:learner" json:"role"` // learner, instructor, admin
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Active       bool   `gorm:"default:true" json:"active"`
}

type InstructorApplication struct {
	gorm.Model
	UserID         uint   `gorm:"not null;index" json:"userId"`
	Biography      string `json:"biography"`
	Expertise      string `json:"expertise"`
	Status         string `gorm:"default:PENDING" json:"status"`
	DecisionReason string `json:"decisionReason"`
	DecidedBy      uint   `json:"decidedBy"`
}
