package models

// Email is a contact-form email recorded before delivery is attempted.
// The record is kept even when SMTP delivery fails so the admin dashboard
// always sees the message.
type Email struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	SenderName     string `json:"sender_name"`
	SenderEmail    string `json:"sender_email"`
	SenderPhone    string `json:"sender_phone"`
	Message        string `json:"message"`
	RecipientEmail string `json:"recipient_email"`

	Status    Status `json:"status"`
	IsRead    bool   `json:"is_read"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// EmailPatch is a partial update; nil fields are left untouched.
type EmailPatch struct {
	Status    *Status `json:"status,omitempty"`
	IsRead    *bool   `json:"is_read,omitempty"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// EmailReply is an admin reply attached to an email record.
type EmailReply struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	EmailID      string `json:"email_id"`
	AdminID      string `json:"admin_id,omitempty"`
	AdminName    string `json:"admin_name"`
	ReplyMessage string `json:"reply_message"`
}
