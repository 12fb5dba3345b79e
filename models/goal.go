package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "ativa"
	GoalCompleted GoalStatus = "concluida"
)

type Goal struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"` // HTML já sanitizado
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	Status      GoalStatus `gorm:"type:varchar(20);not null;default:'ativa'" json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	SubjectID *uuid.UUID `gorm:"type:uuid;index" json:"subject_id,omitempty"`
	Subject   *Subject   `gorm:"constraint:OnDelete:SET NULL;" json:"subject,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
