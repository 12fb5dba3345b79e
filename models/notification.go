package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifReminder    NotificationType = "lembrete"
	NotifAchievement NotificationType = "conquista"
	NotifSystem      NotificationType = "sistema"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"` // destinatário

	Type    NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Title   string           `gorm:"size:200;not null" json:"title"`
	Message string           `gorm:"type:text;not null" json:"message"`
	IsRead  bool             `gorm:"default:false" json:"is_read"`

	Link *string `gorm:"size:255" json:"link,omitempty"`         // URL de destino (opcional)
	Icon string  `gorm:"size:50;default:'fa-bell'" json:"icon"` // ícone Font Awesome

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
