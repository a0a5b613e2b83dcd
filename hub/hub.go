// Package hub menyiarkan perubahan booking, meja, dan restoran ke dashboard staff lewat WebSocket.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
)

// Event types
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingUpdate    = "booking_update"
	EventTableUpdate      = "table_update"
	EventTableCreate      = "table_create"
	EventRestaurantUpdate = "restaurant_update"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung koneksi staff (manager, admin). Satu mutex menjaga map client
// sekaligus menyerialkan penulisan ke setiap koneksi.
type Hub struct {
	clients map[*websocket.Conn]models.Role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]models.Role)}
}

func (h *Hub) Register(conn *websocket.Conn, role models.Role) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// Unregister melepaskan connection dan menutupnya
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// BroadcastBooking memilih event dari status booking saat ini
func (h *Hub) BroadcastBooking(event string, booking *models.Booking) {
	h.Broadcast(Message{Event: event, Data: booking})
}

func (h *Hub) BroadcastBookingStatus(booking *models.Booking) {
	event := EventBookingUpdate
	switch booking.Status {
	case models.BookingStatusConfirmed:
		event = EventBookingConfirmed
	case models.BookingStatusCancelled:
		event = EventBookingCancelled
	}
	h.BroadcastBooking(event, booking)
}

func (h *Hub) BroadcastTableUpdate(table *models.Table) {
	h.Broadcast(Message{Event: EventTableUpdate, Data: table})
}

func (h *Hub) BroadcastTableCreate(table *models.Table) {
	h.Broadcast(Message{Event: EventTableCreate, Data: table})
}

func (h *Hub) BroadcastRestaurantUpdate(restaurant *models.Restaurant) {
	h.Broadcast(Message{Event: EventRestaurantUpdate, Data: restaurant})
}

// Broadcast mengirim pesan ke semua client; client yang gagal ditulis dilepas.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
