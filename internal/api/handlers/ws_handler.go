package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/moderation-platform/internal/api/middleware"
	"github.com/linskybing/moderation-platform/internal/application"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

type EventsHandler struct {
	hub      *application.EventHub
	upgrader websocket.Upgrader
}

// NewEventsHandler accepts handshakes without an Origin header or from one of
// allowedOrigins. Localhost origins are accepted only with allowLocalhost.
func NewEventsHandler(hub *application.EventHub, allowedOrigins []string, allowLocalhost bool) *EventsHandler {
	allowed := middleware.OriginChecker(allowedOrigins, allowLocalhost)
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed(origin)
			},
		},
	}
}

// StreamEvents godoc
// @Summary Stream submission transitions
// @Description Upgrades to a websocket and pushes one JSON message per committed transition the caller can view.
// @Tags events
// @Security BearerAuth
// @Success 101
// @Router /ws/submissions/events [get]
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Printf("[events] websocket upgrade failed: %v", err)
		return
	}

	events, cancel := h.hub.Subscribe(actor)
	defer cancel()

	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { _ = conn.Close() }()

		pingTicker := time.NewTicker(pingPeriod)
		defer pingTicker.Stop()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-pingTicker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Clients never send data; reading only drives pong and close handling.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[events] websocket error for %s: %v", actor.UserID, err)
			}
			break
		}
	}
	cancel()
	<-done
}
