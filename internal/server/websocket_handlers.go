package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/MeKo-Tech/readorder/internal/page"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketOrderRequest is one page ordering request on a streaming
// connection.
type WebSocketOrderRequest struct {
	RequestID string        `json:"request_id,omitempty"`
	Page      page.Document `json:"page"`
}

// WebSocketOrderResponse is the streamed result for one page.
type WebSocketOrderResponse struct {
	Status    string `json:"status"` // "completed", "error"
	RequestID string `json:"request_id,omitempty"`
	Order     []int  `json:"order,omitempty"`
	Count     int    `json:"count,omitempty"`
	Error     string `json:"error,omitempty"`
}

// orderWebSocketHandler handles streaming order requests: each JSON message
// carries one page, each response one ordering.
func (s *Server) orderWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("WebSocket read error", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()

		s.writeWebSocketResponse(conn, s.handleOrderMessage(data))
	}
}

func (s *Server) handleOrderMessage(data []byte) WebSocketOrderResponse {
	var req WebSocketOrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return WebSocketOrderResponse{Status: "error", Error: "invalid request: " + err.Error()}
	}
	if err := req.Page.Validate(); err != nil {
		return WebSocketOrderResponse{
			Status:    "error",
			RequestID: req.RequestID,
			Error:     "invalid page document: " + err.Error(),
		}
	}

	result, err := s.computeOrder(req.Page)
	if err != nil {
		return WebSocketOrderResponse{Status: "error", RequestID: req.RequestID, Error: err.Error()}
	}
	orderRequestsTotal.WithLabelValues("ok").Inc()
	return WebSocketOrderResponse{
		Status:    "completed",
		RequestID: req.RequestID,
		Order:     result.Order,
		Count:     result.Count,
	}
}

func (s *Server) writeWebSocketResponse(conn *websocket.Conn, resp WebSocketOrderResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("marshaling WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("WebSocket write error", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
