package user

import "time"

// User is an account record keyed by email. Login upserts name and avatar.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Avatar    string    `json:"avatar"`
	IsPremium bool      `json:"isPremium"`
	JoinedAt  time.Time `json:"joinedAt"`
}
