package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/services"
)

// GET /api/notificacoes
// Filtros opcionais: ?tipo=lembrete|conquista|sistema e ?lida=true|false
func GetNotifications(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := db.Where("user_id = ?", userID).Order("created_at DESC")

	if tipo := c.Query("tipo"); tipo != "" {
		query = query.Where("type = ?", tipo)
	}
	switch c.Query("lida") {
	case "true":
		query = query.Where("is_read = true")
	case "false":
		query = query.Where("is_read = false")
	}

	var list []models.Notification
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar notificações"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": list})
}

// GET /api/notificacoes/nao-lidas
func GetUnreadCount(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = false", userID).Count(&count)
	c.JSON(http.StatusOK, gin.H{"success": true, "nao_lidas": count})
}

// PATCH /api/notificacoes/:id/lida
// Idempotente; notificação de outro usuário é tratada como inexistente.
func MarkNotificationAsRead(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de notificação inválido"})
		return
	}

	var notif models.Notification
	if err := db.First(&notif, "id = ? AND user_id = ?", notificationID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notificação não encontrada"})
		return
	}

	if !notif.IsRead {
		now := time.Now()
		if err := db.Model(&notif).
			Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao atualizar a notificação"})
			return
		}
	}

	// Atualiza o contador em tempo real
	services.PushUnreadCount(db, userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notificação marcada como lida"})
}

// PATCH /api/notificacoes/lidas
func MarkAllAsRead(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao marcar todas como lidas"})
		return
	}

	services.PushUnreadCount(db, userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Todas as notificações foram marcadas como lidas"})
}

// DELETE /api/notificacoes/:id
func DeleteNotification(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de notificação inválido"})
		return
	}

	// Confirma que a notificação pertence ao usuário
	var notif models.Notification
	if err := db.First(&notif, "id = ? AND user_id = ?", notifID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notificação não encontrada"})
		return
	}

	if err := db.Delete(&notif).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao excluir a notificação"})
		return
	}

	services.PushUnreadCount(db, userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notificação excluída com sucesso"})
}

// DELETE /api/notificacoes/lidas
// Remove as já lidas, preserva as não lidas.
func DeleteReadNotifications(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := db.Where("user_id = ? AND is_read = true", userID).
		Delete(&models.Notification{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao excluir notificações lidas"})
		return
	}

	services.PushUnreadCount(db, userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notificações lidas excluídas com sucesso"})
}
