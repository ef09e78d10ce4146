package review

import "time"

// Review is user feedback on one persona. AdminReply starts empty and is
// filled in through the moderation endpoint.
type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	PersonaID  string    `gorm:"index;size:64" json:"personaId"`
	UserName   string    `json:"userName"`
	UserEmail  string    `gorm:"size:255" json:"userEmail"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	AdminReply string    `json:"adminReply"`
	CreatedAt  time.Time `json:"createdAt"`
}
