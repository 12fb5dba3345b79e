package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Activity struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	// FK real para a matéria; SET NULL quando a matéria é removida
	SubjectID *uuid.UUID `gorm:"type:uuid;index" json:"subject_id,omitempty"`
	Subject   *Subject   `gorm:"constraint:OnDelete:SET NULL;" json:"subject,omitempty"`

	PrimaryTopic string     `gorm:"size:100;not null" json:"primary_topic"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"` // HTML já sanitizado
	Duration     *string    `gorm:"size:10" json:"duration,omitempty"`      // formato HH:MM
	Date         *time.Time `gorm:"type:date" json:"date,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
