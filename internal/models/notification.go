package models

// Notification is a dashboard alert derived from an unread feedback or
// email record. Notifications are not persisted separately; the unread
// records themselves are the source of truth.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // "feedback" or "email"
	Title     string `json:"title"`
	Message   string `json:"message"`
	From      string `json:"from"`
	CreatedAt string `json:"created_at"`
	IsRead    bool   `json:"is_read"`
}
