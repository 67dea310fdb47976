package chat

import (
	"github.com/emonshikder007/chat-app/internal/group"
	"github.com/emonshikder007/chat-app/internal/user"
	"github.com/google/uuid"
)

type Kind string

const (
	KindPrivate Kind = "private"
	KindGroup   Kind = "group"
)

// ConversationRef points at the active chat: either a private peer or a
// group, never both. Identity for comparison is (Kind, ID).
type ConversationRef struct {
	Kind  Kind
	Peer  *user.UserDTO
	Group *group.GroupDTO
}

func PrivateRef(peer user.UserDTO) ConversationRef {
	return ConversationRef{Kind: KindPrivate, Peer: &peer}
}

func GroupRef(g group.GroupDTO) ConversationRef {
	return ConversationRef{Kind: KindGroup, Group: &g}
}

func (r ConversationRef) ID() uuid.UUID {
	switch r.Kind {
	case KindPrivate:
		if r.Peer != nil {
			return r.Peer.ID
		}
	case KindGroup:
		if r.Group != nil {
			return r.Group.ID
		}
	}
	return uuid.Nil
}

// Same reports whether both refs point at the one conversation.
func (r ConversationRef) Same(other *ConversationRef) bool {
	if other == nil {
		return false
	}
	return r.Kind == other.Kind && r.ID() == other.ID()
}
