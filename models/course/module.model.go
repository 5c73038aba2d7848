package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module represents an ordered section within a course
type Module struct {
	ID          uuid.UUID      `json:"id" gorm:"type:varchar(36);primaryKey"`
	ModuleName  string         `json:"moduleName" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Order       int            `json:"order" gorm:"column:order_index;not null"`
	CourseID    uuid.UUID      `json:"courseId" gorm:"type:varchar(36);not null;index"`
	Course      *CourseSummary `json:"course,omitempty" gorm:"-"`
	Lessons     []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"precision:6"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"precision:6"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ModuleSummary is the slice of a module embedded in lesson listings
type ModuleSummary struct {
	ID         uuid.UUID `json:"id"`
	ModuleName string    `json:"moduleName"`
	CourseID   uuid.UUID `json:"courseId"`
}
