package models

// Feedback is a customer feedback submission from the public site form.
// IDs are strings generated by the store (millisecond timestamp plus a
// random fraction); CreatedAt is an RFC 3339 string so the snapshot file
// round-trips without timezone surprises.
type Feedback struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
	Type    string `json:"type"`

	Status Status `json:"status"`
	IsRead bool   `json:"is_read"`
}

// FeedbackPatch is a partial update; nil fields are left untouched.
type FeedbackPatch struct {
	Status *Status `json:"status,omitempty"`
	IsRead *bool   `json:"is_read,omitempty"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
}

// FeedbackReply is an admin reply attached to a feedback record.
// FeedbackID is always the parent's string ID, compared exactly.
type FeedbackReply struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	FeedbackID   string `json:"feedback_id"`
	ReplyMessage string `json:"reply_message"`
	AdminName    string `json:"admin_name"`
}
