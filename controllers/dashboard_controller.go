package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/services"
	"github.com/focusup-app/focusup-backend/validation"
)

// Cliente do OpenAlex; o router pode trocar por um fake nos testes.
var OpenAlex = services.NewOpenAlexService()

type WeekPoint struct {
	Week    string `json:"week"` // "2025-W33"
	Minutes int    `json:"minutes"`
}

// GET /api/dashboard
func GetDashboard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Totais gerais
	var activityCount int64
	db.Model(&models.Activity{}).Where("user_id = ?", userID).Count(&activityCount)

	var subjectCount int64
	db.Model(&models.Subject{}).Where("user_id = ?", userID).Count(&subjectCount)

	var activeGoals, completedGoals int64
	db.Model(&models.Goal{}).Where("user_id = ? AND status = ?", userID, models.GoalActive).Count(&activeGoals)
	db.Model(&models.Goal{}).Where("user_id = ? AND status = ?", userID, models.GoalCompleted).Count(&completedGoals)

	var badgeCount int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", userID).Count(&badgeCount)

	// Minutos totais e da semana corrente
	type row struct {
		Duration  *string
		CreatedAt time.Time
	}
	var rows []row
	db.Model(&models.Activity{}).
		Where("user_id = ? AND duration IS NOT NULL", userID).
		Select("duration", "created_at").
		Scan(&rows)

	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, now.Location())

	totalMinutes, weekMinutes := 0, 0
	perWeek := make(map[string]int)
	for _, r := range rows {
		if r.Duration == nil {
			continue
		}
		m := validation.ParseDurationToMinutes(*r.Duration)
		totalMinutes += m
		if !r.CreatedAt.Before(weekStart) {
			weekMinutes += m
		}
		y, w := r.CreatedAt.ISOWeek()
		perWeek[weekKey(y, w)] += m
	}

	// Gráfico das últimas 12 semanas, com semanas vazias zeradas
	chart := make([]WeekPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		y, w := now.AddDate(0, 0, -7*i).ISOWeek()
		key := weekKey(y, w)
		chart = append(chart, WeekPoint{Week: key, Minutes: perWeek[key]})
	}

	// Recomendações de artigos a partir das matérias do usuário.
	// Busca oportunista: em caso de falha vem lista vazia, nunca erro.
	var subjectNames []string
	db.Model(&models.Subject{}).Where("user_id = ?", userID).Limit(3).Pluck("name", &subjectNames)
	articles := []services.Article{}
	if len(subjectNames) > 0 {
		articles = OpenAlex.SearchArticles(strings.Join(subjectNames, " "), 5)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"total_minutes":   totalMinutes,
			"week_minutes":    weekMinutes,
			"activities":      activityCount,
			"subjects":        subjectCount,
			"active_goals":    activeGoals,
			"completed_goals": completedGoals,
			"badges":          badgeCount,
		},
		"weekly_chart": chart,
		"articles":     articles,
	})
}

func weekKey(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

// GET /api/dashboard/eventos
// Alimenta o calendário: atividades com data e vencimentos de metas.
func GetCalendarEvents(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventos := []gin.H{}

	var activities []models.Activity
	db.Where("user_id = ? AND date IS NOT NULL", userID).Preload("Subject").Find(&activities)
	for _, a := range activities {
		evento := gin.H{
			"id":    a.ID,
			"tipo":  "atividade",
			"title": a.PrimaryTopic,
			"date":  a.Date.Format("2006-01-02"),
		}
		if a.Subject != nil {
			evento["materia"] = a.Subject.Name
		}
		eventos = append(eventos, evento)
	}

	var goals []models.Goal
	db.Where("user_id = ? AND due_date IS NOT NULL AND status = ?", userID, models.GoalActive).Find(&goals)
	for _, g := range goals {
		eventos = append(eventos, gin.H{
			"id":    g.ID,
			"tipo":  "meta",
			"title": g.Title,
			"date":  g.DueDate.Format("2006-01-02"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "eventos": eventos})
}

// GET /api/dashboard/sugestoes
func GetStudySuggestions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var subjectNames []string
	db.Model(&models.Subject{}).Where("user_id = ?", userID).Pluck("name", &subjectNames)

	text, err := services.StudySuggestions(subjectNames)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Não foi possível gerar sugestões agora. Tente mais tarde.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sugestoes": text})
}
