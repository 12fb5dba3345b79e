package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/services"
	"github.com/focusup-app/focusup-backend/validation"
)

type ActivityInput struct {
	SubjectID    *string `json:"subject_id"`
	PrimaryTopic string  `json:"primary_topic" binding:"required"`
	Description  string  `json:"description"`
	Duration     string  `json:"duration"`
	Date         string  `json:"date"` // formato 2006-01-02
}

const dateLayout = "2006-01-02"

// resolveSubject confirma que a matéria pertence ao usuário.
func resolveSubject(db *gorm.DB, userID uuid.UUID, raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	subjectID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, false
	}
	var count int64
	db.Model(&models.Subject{}).Where("id = ? AND user_id = ?", subjectID, userID).Count(&count)
	if count == 0 {
		return nil, false
	}
	return &subjectID, true
}

func buildActivityFields(c *gin.Context, input ActivityInput, activity *models.Activity) bool {
	if len([]rune(input.PrimaryTopic)) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O assunto deve ter pelo menos 2 caracteres"})
		return false
	}
	if ok, msg := validation.ValidateDuration(input.Duration); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return false
	}

	activity.PrimaryTopic = input.PrimaryTopic

	if input.Description != "" {
		clean := validation.SanitizeText(input.Description)
		activity.Description = &clean
	} else {
		activity.Description = nil
	}

	if input.Duration != "" {
		d := input.Duration
		activity.Duration = &d
	} else {
		activity.Duration = nil
	}

	if input.Date != "" {
		parsed, err := time.Parse(dateLayout, input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data inválida, use o formato AAAA-MM-DD"})
			return false
		}
		activity.Date = &parsed
	} else {
		activity.Date = nil
	}

	return true
}

// POST /api/atividades
func CreateActivity(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O assunto da atividade é obrigatório"})
		return
	}

	subjectID, ok := resolveSubject(db, userID, input.SubjectID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Matéria não encontrada"})
		return
	}

	activity := models.Activity{
		UserID:    userID,
		SubjectID: subjectID,
	}
	if !buildActivityFields(c, input, &activity) {
		return
	}

	if err := db.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível registrar a atividade"})
		return
	}

	// Conquistas ligadas a atividades
	services.CheckAndGrant(db, userID, models.CriterionFirstActivity)
	services.CheckAndGrant(db, userID, models.CriterionTenHoursStudied)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Atividade registrada com sucesso",
		"activity": activity,
	})
}

// GET /api/atividades
func GetActivities(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := db.Where("user_id = ?", userID).Preload("Subject").Order("created_at DESC")

	if materia := c.Query("materia"); materia != "" {
		if subjectID, err := uuid.Parse(materia); err == nil {
			query = query.Where("subject_id = ?", subjectID)
		}
	}
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse(dateLayout, from); err == nil {
			query = query.Where("date >= ?", parsed)
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse(dateLayout, to); err == nil {
			query = query.Where("date <= ?", parsed)
		}
	}

	var activities []models.Activity
	if err := query.Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao listar atividades"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activities": activities})
}

// PUT /api/atividades/:id
func UpdateActivity(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return
	}

	var activity models.Activity
	if err := db.First(&activity, "id = ? AND user_id = ?", activityID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Atividade não encontrada"})
		return
	}

	var input ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O assunto da atividade é obrigatório"})
		return
	}

	subjectID, ok := resolveSubject(db, userID, input.SubjectID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Matéria não encontrada"})
		return
	}
	activity.SubjectID = subjectID

	if !buildActivityFields(c, input, &activity) {
		return
	}

	if err := db.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível atualizar a atividade"})
		return
	}

	// A duração pode ter mudado
	services.CheckAndGrant(db, userID, models.CriterionTenHoursStudied)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Atividade atualizada com sucesso",
		"activity": activity,
	})
}

// DELETE /api/atividades/:id
func DeleteActivity(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return
	}

	var activity models.Activity
	if err := db.First(&activity, "id = ? AND user_id = ?", activityID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Atividade não encontrada"})
		return
	}

	if err := db.Delete(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível excluir a atividade"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Atividade excluída com sucesso"})
}
