package chat

import (
	"context"
	"sync"

	"github.com/emonshikder007/chat-app/internal/events"
	"github.com/emonshikder007/chat-app/internal/group"
	"github.com/emonshikder007/chat-app/internal/message"
	"github.com/emonshikder007/chat-app/internal/user"
	"github.com/emonshikder007/chat-app/pkg/logger"
	"github.com/google/uuid"
)

// Store owns the active conversation: its message list, the loading flags,
// and the live-subscription lifecycle. Commands come from the UI goroutine,
// live events from the socket reader; one mutex serializes both.
//
// Two rules keep it honest:
//   - detach-before-attach: Select and Subscribe always remove both handler
//     kinds before installing anything, so switching conversations N times
//     can never stack N handlers;
//   - stale guard: every async result is committed only if the conversation
//     it was fetched for is still the selected one.
type Store struct {
	api    API
	socket Socket
	logger logger.Logger

	mu              sync.Mutex
	selected        *ConversationRef
	messages        []message.MessageDTO
	messagesLoading bool
	usersLoading    bool
	groupsLoading   bool
	users           []user.UserDTO
	groups          []group.GroupDTO
}

func NewStore(api API, socket Socket, logger logger.Logger) *Store {
	return &Store{api: api, socket: socket, logger: logger}
}

// Select replaces the active conversation. Handlers for the previous one are
// detached first; nil clears the selection entirely.
func (s *Store) Select(ref *ConversationRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detach()
	s.selected = ref
	s.messages = nil
}

// Subscribe attaches the live handler for the selected conversation. Any
// previously attached handlers are removed first, unconditionally.
func (s *Store) Subscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detach()
	if s.selected == nil {
		return
	}

	ref := *s.selected
	switch ref.Kind {
	case KindPrivate:
		s.socket.On(events.NewMessage, func(m message.MessageDTO) {
			// Only messages FROM the selected peer belong here; own sends
			// arrive as the REST echo.
			if m.SenderID != ref.ID() {
				return
			}
			s.appendLive(ref, m)
		})
	case KindGroup:
		s.socket.On(events.NewGroupMessage, func(m message.MessageDTO) {
			if m.GroupID == nil || *m.GroupID != ref.ID() {
				return
			}
			s.appendLive(ref, m)
		})
	}
}

// Unsubscribe detaches both handler kinds. Safe when none are attached.
func (s *Store) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detach()
}

// caller must hold s.mu
func (s *Store) detach() {
	s.socket.Off(events.NewMessage)
	s.socket.Off(events.NewGroupMessage)
}

func (s *Store) appendLive(ref ConversationRef, m message.MessageDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The handler can fire after the user switched away but before Off took
	// effect on the reader goroutine; never leak into another conversation.
	if !ref.Same(s.selected) {
		return
	}
	if s.hasMessage(m.ID) {
		return
	}
	s.messages = append(s.messages, m)
}

// caller must hold s.mu
func (s *Store) hasMessage(id uuid.UUID) bool {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].ID == id {
			return true
		}
	}
	return false
}

// LoadMessages fetches history for ref. The result is discarded if the user
// has switched away by the time the fetch resolves.
func (s *Store) LoadMessages(ctx context.Context, ref ConversationRef) error {
	s.mu.Lock()
	s.messagesLoading = true
	s.messages = nil
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.messagesLoading = false
		s.mu.Unlock()
	}()

	var (
		history []message.MessageDTO
		err     error
	)
	switch ref.Kind {
	case KindPrivate:
		history, err = s.api.PrivateHistory(ctx, ref.ID())
	case KindGroup:
		history, err = s.api.GroupHistory(ctx, ref.ID())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ref.Same(s.selected) {
		// Stale response: the user moved on, this history no longer applies.
		return nil
	}
	if err != nil {
		s.messages = nil
		s.logger.Error("failed to load messages", "kind", ref.Kind, "err", err)
		return err
	}

	// A live event may have landed while the fetch was in flight; keep it,
	// minus anything the history already contains.
	merged := history
	for _, m := range s.messages {
		found := false
		for _, h := range history {
			if h.ID == m.ID {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, m)
		}
	}
	s.messages = merged
	return nil
}

// Send posts to the selected conversation and appends the server's echo.
// Without a selection it is a no-op.
func (s *Store) Send(ctx context.Context, cmd message.SendCommand) error {
	s.mu.Lock()
	if s.selected == nil {
		s.mu.Unlock()
		return nil
	}
	ref := *s.selected
	s.mu.Unlock()

	var (
		echo *message.MessageDTO
		err  error
	)
	switch ref.Kind {
	case KindPrivate:
		echo, err = s.api.SendPrivate(ctx, ref.ID(), cmd)
	case KindGroup:
		echo, err = s.api.SendGroup(ctx, ref.ID(), cmd)
	}
	if err != nil {
		s.logger.Error("failed to send message", "kind", ref.Kind, "err", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ref.Same(s.selected) || echo == nil {
		return nil
	}
	if !s.hasMessage(echo.ID) {
		s.messages = append(s.messages, *echo)
	}
	return nil
}

func (s *Store) LoadUsers(ctx context.Context) error {
	s.mu.Lock()
	s.usersLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.usersLoading = false
		s.mu.Unlock()
	}()

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to load users", "err", err)
		return err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

func (s *Store) LoadGroups(ctx context.Context) error {
	s.mu.Lock()
	s.groupsLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.groupsLoading = false
		s.mu.Unlock()
	}()

	groups, err := s.api.ListGroups(ctx)
	if err != nil {
		s.logger.Error("failed to load groups", "err", err)
		return err
	}

	s.mu.Lock()
	s.groups = groups
	s.mu.Unlock()
	return nil
}

// Group commands: mutate on the server, then refresh the local group list.

func (s *Store) CreateGroup(ctx context.Context, name string, members []uuid.UUID) (*group.GroupDTO, error) {
	g, err := s.api.CreateGroup(ctx, name, members)
	if err != nil {
		s.logger.Error("failed to create group", "err", err)
		return nil, err
	}
	return g, s.LoadGroups(ctx)
}

func (s *Store) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	if _, err := s.api.AddMember(ctx, groupID, userID); err != nil {
		s.logger.Error("failed to add member", "err", err)
		return err
	}
	return s.LoadGroups(ctx)
}

func (s *Store) KickMember(ctx context.Context, groupID, memberID uuid.UUID) error {
	if _, err := s.api.KickMember(ctx, groupID, memberID); err != nil {
		s.logger.Error("failed to kick member", "err", err)
		return err
	}
	return s.LoadGroups(ctx)
}

func (s *Store) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	if err := s.api.DeleteGroup(ctx, groupID); err != nil {
		s.logger.Error("failed to delete group", "err", err)
		return err
	}

	s.mu.Lock()
	if s.selected != nil && s.selected.Kind == KindGroup && s.selected.ID() == groupID {
		s.detach()
		s.selected = nil
		s.messages = nil
	}
	s.mu.Unlock()

	return s.LoadGroups(ctx)
}

// Read accessors return copies; callers never see internal slices.

func (s *Store) Selected() *ConversationRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	ref := *s.selected
	return &ref
}

func (s *Store) Messages() []message.MessageDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]message.MessageDTO, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Users() []user.UserDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]user.UserDTO, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Groups() []group.GroupDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]group.GroupDTO, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *Store) MessagesLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messagesLoading
}

func (s *Store) UsersLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usersLoading
}
