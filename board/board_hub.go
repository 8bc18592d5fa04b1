package board

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to the dispatch board.
const (
	EventBookingCreated     = "booking_created"
	EventBookingRescheduled = "booking_rescheduled"
	EventBookingCancelled   = "booking_cancelled"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dispatch-board client (admin, dispatcher).
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var boardHub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	boardHub.mutex.Lock()
	defer boardHub.mutex.Unlock()
	boardHub.clients[conn] = role
}

// UnregisterClient drops a connection.
func UnregisterClient(conn *websocket.Conn) {
	boardHub.mutex.Lock()
	defer boardHub.mutex.Unlock()
	delete(boardHub.clients, conn)
	conn.Close()
}

// BroadcastMessage pushes a message to every connected client.
func BroadcastMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("board: failed to marshal message: %v", err)
		return
	}

	boardHub.mutex.Lock()
	defer boardHub.mutex.Unlock()

	for conn := range boardHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("board: dropping client after write error: %v", err)
			delete(boardHub.clients, conn)
			conn.Close()
		}
	}
}
