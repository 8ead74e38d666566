package models

import (
	"time"

	"github.com/lib/pq"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return true
	}
	return false
}

type Job struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"column:title;type:text" json:"title"`
	Company     string `gorm:"column:company;type:text" json:"company"`
	Description string `gorm:"column:description;type:text" json:"description"`

	// Ordered; order is meaningful to the interview question generator.
	TechStack    pq.StringArray `gorm:"column:tech_stack;type:text[]" json:"tech_stack"`
	Requirements pq.StringArray `gorm:"column:requirements;type:text[]" json:"requirements"`

	Location    string         `gorm:"column:location;type:text" json:"location"`
	Type        EmploymentType `gorm:"column:type;type:text" json:"type"`
	SalaryRange string         `gorm:"column:salary_range;type:text" json:"salary_range,omitempty"`

	CreatedBy string    `gorm:"column:created_by;type:uuid;index" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }
