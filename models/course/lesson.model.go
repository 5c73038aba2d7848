package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson represents an ordered content item within a module
type Lesson struct {
	ID         uuid.UUID      `json:"id" gorm:"type:varchar(36);primaryKey"`
	LessonName string         `json:"lessonName" gorm:"type:varchar(255);not null"`
	Order      int            `json:"order" gorm:"column:order_index;not null"`
	ModuleID   uuid.UUID      `json:"moduleId" gorm:"type:varchar(36);not null;index"`
	Module     *ModuleSummary `json:"module,omitempty" gorm:"-"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"precision:6"`
	UpdatedAt  time.Time      `json:"updatedAt" gorm:"precision:6"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
