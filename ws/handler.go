package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/focusup-app/focusup-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // apenas para desenvolvimento, restringir em produção
	},
}

// WebSocket de notificações: o token vem na query string porque
// browsers não enviam headers customizados no handshake.
func HandleNotificationWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token ausente"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	userID := claims.UserID
	log.Printf("WS de notificações conectado: userID=%s\n", userID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Upgrade do WebSocket falhou:", err)
		return
	}
	H.Register(userID, conn)
	defer H.Unregister(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("WS de notificações desconectado: userID=%s\n", userID)
	conn.Close()
}
