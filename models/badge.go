package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BadgeCriterion é o identificador fechado do critério de conquista.
// Cada critério tem um avaliador registrado no motor de gamificação;
// um critério desconhecido nunca é concedido.
type BadgeCriterion string

const (
	CriterionFirstActivity      BadgeCriterion = "first_activity"
	CriterionFirstGoalCompleted BadgeCriterion = "first_goal_completed"
	CriterionTenHoursStudied    BadgeCriterion = "ten_hours_studied"
	CriterionFiveSubjects       BadgeCriterion = "five_subjects"
)

type Badge struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Icon        string         `gorm:"size:50" json:"icon"`
	Category    string         `gorm:"size:50" json:"category"`
	Criterion   BadgeCriterion `gorm:"type:varchar(50);not null;index" json:"criterion"`
	Points      int            `gorm:"default:0" json:"points"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserBadge registra a concessão de uma conquista a um usuário.
// O índice único composto garante no máximo uma concessão por (usuário, conquista).
type UserBadge struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:1" json:"user_id"`
	BadgeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:2" json:"badge_id"`
	Badge   Badge     `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`

	GrantedAt time.Time `gorm:"autoCreateTime" json:"granted_at"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (ub *UserBadge) BeforeCreate(tx *gorm.DB) error {
	if ub.ID == uuid.Nil {
		ub.ID = uuid.New()
	}
	return nil
}
