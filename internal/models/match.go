package models

import (
	"time"
)

// MatchThreshold is the minimum score that counts as a match.
const MatchThreshold = 5

// IsMatchingScore derives the match flag from a score. Every place that
// needs the derivation goes through this function so the stored and
// recomputed values cannot drift.
func IsMatchingScore(score int) bool {
	return score >= MatchThreshold
}

// Match is one persisted scoring outcome for a (candidate, employer,
// requirement) triple. Rows are insert-only: a new requirement submission
// creates new rows, it never overwrites old ones.
type Match struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int       `gorm:"column:userId;not null" json:"userId"`
	EmployerID  int       `gorm:"column:employerId;not null" json:"employerId"`
	Requirement string    `gorm:"type:text;not null" json:"requirement"`
	Score       int       `gorm:"not null" json:"score"`
	IsMatch     bool      `gorm:"column:match;not null" json:"match"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Match) TableName() string {
	return "matches"
}

// Employer is the employer profile owned by the user-management service.
// The pipeline only reads it to validate that a requirement submission
// references a real employer.
type Employer struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Email       string `gorm:"type:text;uniqueIndex" json:"email"`
	CompanyName string `gorm:"column:companyName;type:text" json:"companyName"`
	Requirement string `gorm:"type:text" json:"requirement"`
}

func (Employer) TableName() string {
	return "employers"
}
