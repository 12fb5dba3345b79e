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

type GoalInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"` // formato 2006-01-02
	SubjectID   *string `json:"subject_id"`
}

// POST /api/metas
func CreateGoal(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O título da meta é obrigatório"})
		return
	}

	if n := len([]rune(input.Title)); n < 3 || n > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O título deve ter entre 3 e 200 caracteres"})
		return
	}

	subjectID, ok := resolveSubject(db, userID, input.SubjectID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Matéria não encontrada"})
		return
	}

	goal := models.Goal{
		UserID:    userID,
		Title:     input.Title,
		Status:    models.GoalActive,
		SubjectID: subjectID,
	}

	if input.Description != "" {
		clean := validation.SanitizeText(input.Description)
		goal.Description = &clean
	}
	if input.DueDate != "" {
		parsed, err := time.Parse(dateLayout, input.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data inválida, use o formato AAAA-MM-DD"})
			return
		}
		goal.DueDate = &parsed
	}

	if err := db.Create(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível criar a meta"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Meta criada com sucesso",
		"goal":    goal,
	})
}

// GET /api/metas
func GetGoals(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := db.Where("user_id = ?", userID).Preload("Subject").Order("created_at DESC")

	switch c.Query("status") {
	case "ativa":
		query = query.Where("status = ?", models.GoalActive)
	case "concluida":
		query = query.Where("status = ?", models.GoalCompleted)
	}

	var goals []models.Goal
	if err := query.Find(&goals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao listar metas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "goals": goals})
}

// PUT /api/metas/:id
func UpdateGoal(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return
	}

	var goal models.Goal
	if err := db.First(&goal, "id = ? AND user_id = ?", goalID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Meta não encontrada"})
		return
	}

	var input GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O título da meta é obrigatório"})
		return
	}

	if n := len([]rune(input.Title)); n < 3 || n > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O título deve ter entre 3 e 200 caracteres"})
		return
	}

	subjectID, ok := resolveSubject(db, userID, input.SubjectID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Matéria não encontrada"})
		return
	}

	goal.Title = input.Title
	goal.SubjectID = subjectID
	if input.Description != "" {
		clean := validation.SanitizeText(input.Description)
		goal.Description = &clean
	} else {
		goal.Description = nil
	}
	if input.DueDate != "" {
		parsed, err := time.Parse(dateLayout, input.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data inválida, use o formato AAAA-MM-DD"})
			return
		}
		goal.DueDate = &parsed
	} else {
		goal.DueDate = nil
	}

	if err := db.Save(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível atualizar a meta"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meta atualizada com sucesso",
		"goal":    goal,
	})
}

// PATCH /api/metas/:id/concluir
// Transição de mão única: ativa -> concluida, exatamente uma vez.
func CompleteGoal(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return
	}

	var goal models.Goal
	if err := db.First(&goal, "id = ? AND user_id = ?", goalID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Meta não encontrada"})
		return
	}

	if goal.Status == models.GoalCompleted {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Esta meta já foi concluída"})
		return
	}

	now := time.Now()
	goal.Status = models.GoalCompleted
	goal.CompletedAt = &now
	if err := db.Save(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível concluir a meta"})
		return
	}

	link := "/metas"
	services.CreateNotification(db, userID, models.NotifSystem,
		"Meta concluída!",
		"Você concluiu a meta \""+goal.Title+"\". Continue assim!",
		&link, "fa-check-circle")
	services.PushUnreadCount(db, userID)

	// Conquista de primeira meta concluída
	services.CheckAndGrant(db, userID, models.CriterionFirstGoalCompleted)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meta concluída com sucesso",
		"goal":    goal,
	})
}

// DELETE /api/metas/:id
func DeleteGoal(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return
	}

	var goal models.Goal
	if err := db.First(&goal, "id = ? AND user_id = ?", goalID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Meta não encontrada"})
		return
	}

	if err := db.Delete(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível excluir a meta"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meta excluída com sucesso"})
}
