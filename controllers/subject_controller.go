package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/services"
	"github.com/focusup-app/focusup-backend/validation"
)

// Input para Create / Update
type SubjectInput struct {
	Name string `json:"name" binding:"required"`
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Sessão inválida"})
		return uuid.Nil, false
	}
	return id, true
}

// POST /api/materias
func CreateSubject(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input SubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O nome da matéria é obrigatório"})
		return
	}

	if ok, msg := validation.ValidateSubjectName(input.Name); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	// === Verifica nome duplicado do mesmo usuário ===
	var count int64
	db.Model(&models.Subject{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, input.Name).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Você já tem uma matéria com esse nome"})
		return
	}

	subject := models.Subject{
		UserID: userID,
		Name:   input.Name,
		Slug:   slug.Make(input.Name),
	}

	if err := db.Create(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível criar a matéria"})
		return
	}

	// Conquista "Dedicado" (5 matérias)
	services.CheckAndGrant(db, userID, models.CriterionFiveSubjects)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Matéria criada com sucesso",
		"subject": subject,
	})
}

// GET /api/materias
// Lista as matérias do usuário com o total de minutos estudados em cada uma.
func GetSubjects(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var subjects []models.Subject
	query := db.Where("user_id = ?", userID).Order("name ASC")

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao listar matérias"})
		return
	}

	// Minutos por matéria, somados a partir das durações das atividades
	out := make([]gin.H, 0, len(subjects))
	for _, s := range subjects {
		var durations []string
		db.Model(&models.Activity{}).
			Where("user_id = ? AND subject_id = ? AND duration IS NOT NULL", userID, s.ID).
			Pluck("duration", &durations)
		total := 0
		for _, d := range durations {
			total += validation.ParseDurationToMinutes(d)
		}
		out = append(out, gin.H{
			"id":             s.ID,
			"name":           s.Name,
			"slug":           s.Slug,
			"created_at":     s.CreatedAt,
			"minutes_logged": total,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "subjects": out})
}

// PUT /api/materias/:id
func UpdateSubject(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return
	}

	var input SubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O nome da matéria é obrigatório"})
		return
	}

	if ok, msg := validation.ValidateSubjectName(input.Name); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	// Matéria de outro usuário é tratada como inexistente
	var subject models.Subject
	if err := db.First(&subject, "id = ? AND user_id = ?", subjectID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Matéria não encontrada"})
		return
	}

	var count int64
	db.Model(&models.Subject{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", userID, input.Name, subjectID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Você já tem uma matéria com esse nome"})
		return
	}

	subject.Name = input.Name
	subject.Slug = slug.Make(input.Name)
	if err := db.Save(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível atualizar a matéria"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Matéria atualizada com sucesso",
		"subject": subject,
	})
}

// DELETE /api/materias/:id
// Atividades que apontam para a matéria ficam com subject_id nulo (SET NULL).
func DeleteSubject(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return
	}

	var subject models.Subject
	if err := db.First(&subject, "id = ? AND user_id = ?", subjectID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Matéria não encontrada"})
		return
	}

	if err := db.Delete(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível excluir a matéria"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Matéria excluída com sucesso"})
}
