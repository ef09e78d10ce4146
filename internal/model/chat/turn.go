package chat

import "time"

// Roles a turn can carry. Exactly two turns are appended per exchange.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message within a session. Turns are append-only.
type Turn struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"index;size:36" json:"sessionId"`
	UserID    string    `gorm:"size:255" json:"userId"`
	PersonaID string    `gorm:"size:64" json:"personaId"`
	Role      string    `gorm:"size:16" json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
