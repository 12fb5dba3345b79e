package config

import (
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
)

// SeedBadges popula o catálogo de conquistas na primeira inicialização.
// Idempotente: upsert por nome, rodar de novo não duplica nada.
func SeedBadges(db *gorm.DB) error {
	badges := []models.Badge{
		{
			Name:        "Primeiro Passo",
			Description: "Registrou sua primeira atividade de estudo",
			Icon:        "fa-shoe-prints",
			Category:    "inicio",
			Criterion:   models.CriterionFirstActivity,
			Points:      10,
		},
		{
			Name:        "Meta Cumprida",
			Description: "Concluiu sua primeira meta de estudo",
			Icon:        "fa-flag-checkered",
			Category:    "metas",
			Criterion:   models.CriterionFirstGoalCompleted,
			Points:      20,
		},
		{
			Name:        "Maratonista",
			Description: "Acumulou 10 horas de estudo registradas",
			Icon:        "fa-stopwatch",
			Category:    "tempo",
			Criterion:   models.CriterionTenHoursStudied,
			Points:      50,
		},
		{
			Name:        "Dedicado",
			Description: "Cadastrou 5 matérias diferentes",
			Icon:        "fa-books",
			Category:    "materias",
			Criterion:   models.CriterionFiveSubjects,
			Points:      30,
		},
	}

	for _, b := range badges {
		if err := db.Where("name = ?", b.Name).FirstOrCreate(&b).Error; err != nil {
			return err
		}
	}
	return nil
}
