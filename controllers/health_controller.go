package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/config"
)

// GET /health
func HealthCheck(c *gin.Context) {
	status := gin.H{"status": "ok"}

	var db *gorm.DB
	if v, ok := c.Get("db"); ok {
		db = v.(*gorm.DB)
	} else {
		db = config.DB
	}

	if db != nil {
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		status["database"] = "up"
	}

	c.JSON(http.StatusOK, status)
}
