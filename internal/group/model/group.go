package model

import (
	"time"

	user "github.com/emonshikder007/chat-app/internal/user/model"
	"github.com/google/uuid"
)

// Group is stored as a single row with its member set inline, mirroring a
// document-store group. Members always contains AdminID and has no duplicates;
// both are enforced by the usecase, not the schema.
type Group struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	Name string `bun:",notnull"`

	AdminID uuid.UUID  `bun:",notnull,type:uuid"`
	Admin   *user.User `bun:"rel:belongs-to,join:admin_id=id"`

	Members []uuid.UUID `bun:",array,notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

func (g *Group) HasMember(id uuid.UUID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}
