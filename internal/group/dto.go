package group

import (
	"time"

	"github.com/google/uuid"
)

// Input commands
type CreateGroupCommand struct {
	Name    string
	Members []uuid.UUID
}

// Output DTO
type GroupDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	AdminID   uuid.UUID   `json:"adminId"`
	Members   []uuid.UUID `json:"members"`
	CreatedAt time.Time   `json:"createdAt"`
}
