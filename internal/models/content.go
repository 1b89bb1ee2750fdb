package models

// Content is a homepage CMS block. (Location, Slot) picks where the block
// renders; ID stays the primary key and several records may share a slot.
// Content is only ever soft-deleted.
type Content struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	Location string `json:"location"`
	Slot     string `json:"slot"`
	Title    string `json:"title"`
	Body     string `json:"body"`

	// ImageURL may be a data URL or an uploaded asset URL.
	ImageURL string `json:"image_url,omitempty"`

	IsPublished bool `json:"is_published"`
	IsDeleted   bool `json:"is_deleted"`
}

// ContentPatch is a partial update; nil fields are left untouched.
type ContentPatch struct {
	Location    *string `json:"location,omitempty"`
	Slot        *string `json:"slot,omitempty"`
	Title       *string `json:"title,omitempty"`
	Body        *string `json:"body,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
	IsDeleted   *bool   `json:"is_deleted,omitempty"`
}
