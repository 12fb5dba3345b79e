package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/focusup-app/focusup-backend/config"
	"github.com/focusup-app/focusup-backend/routes"
)

func main() {
	// Carrega o .env
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado")
	}

	config.InitDB()

	r := gin.Default()

	// Habilita CORS para o front
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Registra as rotas
	r = routes.SetupRouter(r, config.DB)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "FocusUp server is running")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // padrão quando PORT não está definido
	}

	log.Println("Servidor rodando na porta " + port)
	r.Run(":" + port)
}
