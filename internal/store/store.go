// Package store holds the persistence layer: a file-backed in-memory
// store used when no database is configured, a Postgres implementation of
// the same interface, and the dispatch facade the handlers talk to.
package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidStatus is returned when a patch carries a status the entity
// does not use at all.
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidTransition is returned when a patch asks for a status change
// outside the entity's transition table.
var ErrInvalidTransition = errors.New("status transition not allowed")

// FeedbackStore is the persistence interface for feedback records and
// their replies.
type FeedbackStore interface {
	AddFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error)
	ListFeedback(ctx context.Context, q query.Query) ([]models.Feedback, error)
	CountFeedback(ctx context.Context, q query.Query) (int, error)
	UpdateFeedback(ctx context.Context, id string, patch models.FeedbackPatch) (models.Feedback, error)
	MarkAllFeedbackRead(ctx context.Context) (int, error)
	DeleteFeedback(ctx context.Context, id string) error
	AddFeedbackReply(ctx context.Context, r models.FeedbackReply) (models.FeedbackReply, error)
	ListFeedbackReplies(ctx context.Context, feedbackID string) ([]models.FeedbackReply, error)
}

// EmailStore is the persistence interface for email records and replies.
type EmailStore interface {
	AddEmail(ctx context.Context, e models.Email) (models.Email, error)
	ListEmails(ctx context.Context, q query.Query) ([]models.Email, error)
	CountEmails(ctx context.Context, q query.Query) (int, error)
	UpdateEmail(ctx context.Context, id string, patch models.EmailPatch) (models.Email, error)
	MarkAllEmailsRead(ctx context.Context) (int, error)
	DeleteEmail(ctx context.Context, id string) error
	AddEmailReply(ctx context.Context, r models.EmailReply) (models.EmailReply, error)
	ListEmailReplies(ctx context.Context, emailID string) ([]models.EmailReply, error)
}

// ContentStore is the persistence interface for CMS content blocks.
// Content only ever soft-deletes.
type ContentStore interface {
	AddContent(ctx context.Context, c models.Content) (models.Content, error)
	ListContent(ctx context.Context, q query.Query) ([]models.Content, error)
	CountContent(ctx context.Context, q query.Query) (int, error)
	UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (models.Content, error)
	DeleteContent(ctx context.Context, id string) error
}

// Backend is the full storage capability injected into the dispatcher.
// Either the file store or the Postgres store satisfies it; the choice is
// made once at startup.
type Backend interface {
	FeedbackStore
	EmailStore
	ContentStore

	Ping(ctx context.Context) error
	Close() error
}

// newID generates a record ID in the store's historical format: the
// millisecond timestamp plus a random fraction. Collisions are possible in
// theory, never observed in practice at this traffic level.
func newID() string {
	return fmt.Sprintf("%d.%06d", time.Now().UnixMilli(), rand.Intn(1_000_000))
}

// nowISO returns the current UTC time as an RFC 3339 string, the format
// every created_at field uses.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
