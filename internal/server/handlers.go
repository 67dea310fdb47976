package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/emonshikder007/chat-app/internal/group"
	"github.com/emonshikder007/chat-app/internal/message"
	"github.com/emonshikder007/chat-app/internal/user"
	"github.com/emonshikder007/chat-app/pkg/errors"
	"github.com/emonshikder007/chat-app/pkg/logger"
)

type Handler struct {
	users    user.UserUsecase
	groups   group.GroupUsecase
	messages message.MessageUsecase
	logger   logger.Logger
}

func NewHandler(users user.UserUsecase, groups group.GroupUsecase, messages message.MessageUsecase, logger logger.Logger) *Handler {
	return &Handler{users: users, groups: groups, messages: messages, logger: logger}
}

// ===== AUTH =====

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
		Password    string `json:"password"`
		ProfilePic  string `json:"profilePic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, errors.InvalidArg("invalid request body"))
		return
	}

	dto, err := h.users.Register(r.Context(), user.RegisterCommand{
		Username:    body.Username,
		DisplayName: body.DisplayName,
		Password:    body.Password,
		ProfilePic:  body.ProfilePic,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, errors.InvalidArg("invalid request body"))
		return
	}

	resp, err := h.users.Login(r.Context(), user.LoginCommand{Username: body.Username, Password: body.Password})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ===== USERS =====

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	users, err := h.users.ListUsers(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// ===== GROUPS =====

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	var body struct {
		Name    string      `json:"name"`
		Members []uuid.UUID `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, errors.InvalidArg("invalid request body"))
		return
	}

	dto, err := h.groups.Create(r.Context(), actor, group.CreateGroupCommand{Name: body.Name, Members: body.Members})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	actor, groupID, ok := h.actorAndGroup(w, r)
	if !ok {
		return
	}

	var body struct {
		UserID uuid.UUID `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, errors.InvalidArg("invalid request body"))
		return
	}

	dto, err := h.groups.AddMember(r.Context(), actor, groupID, body.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (h *Handler) KickMember(w http.ResponseWriter, r *http.Request) {
	actor, groupID, ok := h.actorAndGroup(w, r)
	if !ok {
		return
	}

	var body struct {
		MemberID uuid.UUID `json:"memberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, errors.InvalidArg("invalid request body"))
		return
	}

	dto, err := h.groups.RemoveMember(r.Context(), actor, groupID, body.MemberID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	actor, groupID, ok := h.actorAndGroup(w, r)
	if !ok {
		return
	}

	if err := h.groups.Delete(r.Context(), actor, groupID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "group deleted successfully"})
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	groups, err := h.groups.ListForUser(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

// ===== MESSAGES =====

func (h *Handler) PrivateHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	peerID, err := uuid.Parse(mux.Vars(r)["peerId"])
	if err != nil {
		respondError(w, errors.InvalidArg("invalid peer id"))
		return
	}

	msgs, err := h.messages.PrivateHistory(r.Context(), actor, peerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, msgs)
}

func (h *Handler) SendPrivate(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	peerID, err := uuid.Parse(mux.Vars(r)["peerId"])
	if err != nil {
		respondError(w, errors.InvalidArg("invalid peer id"))
		return
	}

	var cmd message.SendCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, errors.InvalidArg("invalid request body"))
		return
	}

	dto, err := h.messages.SendPrivate(r.Context(), actor, peerID, cmd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (h *Handler) GroupHistory(w http.ResponseWriter, r *http.Request) {
	actor, groupID, ok := h.actorAndGroup(w, r)
	if !ok {
		return
	}

	msgs, err := h.messages.GroupHistory(r.Context(), actor, groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, msgs)
}

func (h *Handler) SendGroup(w http.ResponseWriter, r *http.Request) {
	actor, groupID, ok := h.actorAndGroup(w, r)
	if !ok {
		return
	}

	var cmd message.SendCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, errors.InvalidArg("invalid request body"))
		return
	}

	dto, err := h.messages.SendGroup(r.Context(), actor, groupID, cmd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (h *Handler) actorAndGroup(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return uuid.Nil, uuid.Nil, false
	}
	groupID, err := uuid.Parse(mux.Vars(r)["groupId"])
	if err != nil {
		respondError(w, errors.InvalidArg("invalid group id"))
		return uuid.Nil, uuid.Nil, false
	}
	return actor, groupID, true
}
