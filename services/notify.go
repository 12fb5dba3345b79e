package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/ws"
)

// CreateNotification grava uma notificação para o usuário.
func CreateNotification(db *gorm.DB, userID uuid.UUID, tipo models.NotificationType, title, message string, link *string, icon string) (*models.Notification, error) {
	if icon == "" {
		icon = "fa-bell"
	}
	notif := models.Notification{
		UserID:  userID,
		Type:    tipo,
		Title:   title,
		Message: message,
		Link:    link,
		Icon:    icon,
	}
	if err := db.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}

// PushUnreadCount reconta as não lidas e empurra pelo WebSocket.
func PushUnreadCount(db *gorm.DB, userID uuid.UUID) {
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = false", userID).Count(&count)
	ws.SendUnreadUpdate(userID.String(), count)
}
