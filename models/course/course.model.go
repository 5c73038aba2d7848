package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course represents a learning course owned by a single user
type Course struct {
	ID          uuid.UUID `json:"id" gorm:"type:varchar(36);primaryKey"`
	CourseName  string    `json:"courseName" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	UserID      string    `json:"userId" gorm:"type:varchar(255);not null;index"`
	Modules     []Module  `json:"modules,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"createdAt" gorm:"precision:6"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"precision:6"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CourseSummary is the slice of a course embedded in module listings
type CourseSummary struct {
	ID         uuid.UUID `json:"id"`
	CourseName string    `json:"courseName"`
}
