package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/utils"
	"github.com/focusup-app/focusup-backend/validation"
)

// GET /api/perfil
func GetProfile(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuário não encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type UpdateProfileInput struct {
	Name               *string `json:"name"`
	DarkTheme          *bool   `json:"dark_theme"`
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
	StudyReminders     *bool   `json:"study_reminders"`
	Locale             *string `json:"locale"`
}

// PUT /api/perfil
// Atualização parcial: só mexe nos campos presentes no corpo.
func UpdateProfile(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Corpo da requisição inválido"})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuário não encontrado"})
		return
	}

	if input.Name != nil {
		if ok, msg := validation.ValidateName(*input.Name); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		user.Name = input.Name
	}
	if input.DarkTheme != nil {
		user.DarkTheme = *input.DarkTheme
	}
	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	if input.PushNotifications != nil {
		user.PushNotifications = *input.PushNotifications
	}
	if input.StudyReminders != nil {
		user.StudyReminders = *input.StudyReminders
	}
	if input.Locale != nil {
		user.Locale = *input.Locale
	}

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao salvar o perfil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Perfil atualizado com sucesso",
		"user":    user,
	})
}

// POST /api/perfil/foto
func UploadProfilePhoto(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Envie o arquivo no campo 'foto'"})
		return
	}

	url, err := utils.UploadProfilePhoto(fileHeader, userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Falha no upload da foto. Tente novamente."})
		return
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("photo", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao salvar a foto"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Foto atualizada com sucesso",
		"photo":   url,
	})
}

// GET /api/perfil/conquistas
func GetUserBadges(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var grants []models.UserBadge
	if err := db.Where("user_id = ?", userID).
		Preload("Badge").
		Order("granted_at DESC").
		Find(&grants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao listar conquistas"})
		return
	}

	// Pontuação total das conquistas
	points := 0
	for _, g := range grants {
		points += g.Badge.Points
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"badges":  grants,
		"points":  points,
	})
}

// DELETE /api/perfil
// Exclui a conta; o cascade remove matérias, atividades, metas,
// notificações e conquistas.
func DeleteAccount(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuário não encontrado"})
		return
	}

	if err := db.Select("Subjects", "Activities", "Goals", "Notifications", "Badges").
		Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao excluir a conta"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Conta excluída com sucesso"})
}
