package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emonshikder007/chat-app/config"
	"github.com/emonshikder007/chat-app/internal/gateway"
)

func NewRouter(h *Handler, hub *gateway.Hub, cfg config.Config) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/ws", gateway.ServeWS(hub, cfg))

	r.HandleFunc("/api/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(cfg))

	api.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)

	api.HandleFunc("/groups", h.CreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/groups", h.ListGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/{groupId}/add", h.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/groups/{groupId}/kick", h.KickMember).Methods(http.MethodPost)
	api.HandleFunc("/groups/{groupId}", h.DeleteGroup).Methods(http.MethodDelete)

	api.HandleFunc("/messages/{peerId}", h.PrivateHistory).Methods(http.MethodGet)
	api.HandleFunc("/messages/send/{peerId}", h.SendPrivate).Methods(http.MethodPost)
	api.HandleFunc("/groups/{groupId}/messages", h.GroupHistory).Methods(http.MethodGet)
	api.HandleFunc("/groups/{groupId}/send", h.SendGroup).Methods(http.MethodPost)

	return r
}
