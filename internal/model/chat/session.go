package chat

import "time"

// Session groups the turns of one conversation thread between a user and a
// persona. Only the title is ever updated after creation.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index:idx_sessions_user_persona;size:255" json:"userId"`
	PersonaID string    `gorm:"index:idx_sessions_user_persona;size:64" json:"personaId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTitle names sessions created without an explicit title.
const DefaultTitle = "New Operation"
