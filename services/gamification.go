package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/validation"
)

// Avaliadores por critério. Enumeração fechada: um critério sem entrada
// aqui nunca é concedido.
var criterionChecks = map[models.BadgeCriterion]func(db *gorm.DB, userID uuid.UUID) (bool, error){
	models.CriterionFirstActivity:      hasAnyActivity,
	models.CriterionFirstGoalCompleted: hasCompletedGoal,
	models.CriterionTenHoursStudied:    hasTenHoursStudied,
	models.CriterionFiveSubjects:       hasFiveSubjects,
}

func hasAnyActivity(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Activity{}).Where("user_id = ?", userID).Count(&count).Error
	return count >= 1, err
}

func hasCompletedGoal(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Goal{}).
		Where("user_id = ? AND status = ?", userID, models.GoalCompleted).
		Count(&count).Error
	return count >= 1, err
}

func hasTenHoursStudied(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var durations []string
	err := db.Model(&models.Activity{}).
		Where("user_id = ? AND duration IS NOT NULL", userID).
		Pluck("duration", &durations).Error
	if err != nil {
		return false, err
	}
	total := 0
	for _, d := range durations {
		total += validation.ParseDurationToMinutes(d)
	}
	return total >= 600, nil
}

func hasFiveSubjects(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Subject{}).Where("user_id = ?", userID).Count(&count).Error
	return count >= 5, err
}

// CheckAndGrant avalia um critério e concede a conquista no máximo uma vez.
// A concessão e a notificação saem na mesma transação; qualquer falha é
// logada e nunca derruba a mutação que disparou a checagem.
func CheckAndGrant(db *gorm.DB, userID uuid.UUID, criterion models.BadgeCriterion) {
	if err := checkAndGrant(db, userID, criterion); err != nil {
		log.Printf("gamificação: falha ao avaliar %s para %s: %v", criterion, userID, err)
	}
}

func checkAndGrant(db *gorm.DB, userID uuid.UUID, criterion models.BadgeCriterion) error {
	check, ok := criterionChecks[criterion]
	if !ok {
		// Critério desconhecido no catálogo: nunca concedido
		log.Printf("gamificação: critério desconhecido %q", criterion)
		return nil
	}

	var badge models.Badge
	if err := db.Where("criterion = ?", criterion).First(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	// Já concedida? Reavaliar nunca duplica
	var existing int64
	if err := db.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badge.ID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	satisfied, err := check(db, userID)
	if err != nil {
		return err
	}
	if !satisfied {
		return nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		grant := models.UserBadge{UserID: userID, BadgeID: badge.ID}
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}
		link := "/conquistas"
		notif := models.Notification{
			UserID:  userID,
			Type:    models.NotifAchievement,
			Title:   fmt.Sprintf("Nova conquista: %s", badge.Name),
			Message: badge.Description,
			Link:    &link,
			Icon:    "fa-trophy",
		}
		return tx.Create(&notif).Error
	})
	if err != nil {
		return err
	}

	PushUnreadCount(db, userID)
	return nil
}
