package gateway

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/emonshikder007/chat-app/config"
	"github.com/emonshikder007/chat-app/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients send Origin; token auth is what actually gates access.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an authenticated request and hooks the connection into
// the hub. The token comes from the Authorization header or, for browser
// WebSocket clients that cannot set headers, a ?token= query parameter.
func ServeWS(hub *Hub, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}

		userID, err := utils.ParseJWTToken(token, cfg)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("websocket upgrade failed", "err", err)
			return
		}

		client := newClient(hub, conn, userID, cfg.Gateway.SendBuffer)
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
