package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Name     *string   `gorm:"size:150" json:"name,omitempty"`
	Photo    *string   `gorm:"size:255" json:"photo,omitempty"`

	// Token de redefinição de senha (uso único, com validade)
	ResetToken       *string    `gorm:"size:100;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	// Preferências do usuário
	DarkTheme          bool   `gorm:"default:false" json:"dark_theme"`
	EmailNotifications bool   `gorm:"default:true" json:"email_notifications"`
	PushNotifications  bool   `gorm:"default:true" json:"push_notifications"`
	StudyReminders     bool   `gorm:"default:true" json:"study_reminders"`
	Locale             string `gorm:"size:10;default:'pt-BR'" json:"locale"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relações
	Subjects      []Subject      `gorm:"constraint:OnDelete:CASCADE;" json:"subjects,omitempty"`
	Activities    []Activity     `gorm:"constraint:OnDelete:CASCADE;" json:"activities,omitempty"`
	Goals         []Goal         `gorm:"constraint:OnDelete:CASCADE;" json:"goals,omitempty"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE;" json:"notifications,omitempty"`
	Badges        []UserBadge    `gorm:"constraint:OnDelete:CASCADE;" json:"badges,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
