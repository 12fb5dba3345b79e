package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Clients map[string]map[*websocket.Conn]*Client // por userID
	Mutex   sync.RWMutex
}

var H = Hub{
	Clients: make(map[string]map[*websocket.Conn]*Client),
}

// Payload de atualização do contador de não lidas
type UnreadUpdate struct {
	Type     string `json:"type"`
	NaoLidas int64  `json:"nao_lidas"`
}

// Register registra a conexão de um usuário
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[userID]; !ok {
		h.Clients[userID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Clients[userID][conn] = client

	go h.writePump(userID, conn)
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, userID)
		}
	}
}

// Broadcast envia para todas as conexões de um usuário
func (h *Hub) Broadcast(userID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) writePump(userID string, conn *websocket.Conn) {
	h.Mutex.RLock()
	client, ok := h.Clients[userID][conn]
	h.Mutex.RUnlock()
	if !ok {
		return
	}

	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// SendUnreadUpdate empurra o novo contador de notificações não lidas
// para os clientes do usuário.
func SendUnreadUpdate(userID string, count int64) {
	update := UnreadUpdate{
		Type:     "nao_lidas",
		NaoLidas: count,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("Erro no marshal JSON:", err)
		return
	}
	H.Broadcast(userID, data)
}
