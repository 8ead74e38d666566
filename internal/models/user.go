package models

import (
	"time"

	"github.com/lib/pq"
)

type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleCandidate || r == RoleAdmin
}

// User role is fixed at signup; profile updates never touch it.
type User struct {
	ID           string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string   `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"column:password_hash;type:text" json:"-"`
	Name         string   `gorm:"column:name;type:text" json:"name"`
	Role         UserRole `gorm:"column:role;type:text" json:"role"`

	Phone       string         `gorm:"column:phone;type:text" json:"phone,omitempty"`
	Skills      pq.StringArray `gorm:"column:skills;type:text[]" json:"skills,omitempty"`
	LinkedinURL string         `gorm:"column:linkedin_url;type:text" json:"linkedin_url,omitempty"`
	ResumeURL   string         `gorm:"column:resume_url;type:text" json:"resume_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (User) TableName() string { return "users" }
