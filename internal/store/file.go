package store

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
)

// snapshot is the on-disk layout: five named sequences in one JSON file,
// rewritten wholesale on every mutation. The key names are part of the
// file format and must not change.
type snapshot struct {
	Feedback        []models.Feedback      `json:"feedbackData"`
	Emails          []models.Email         `json:"emailData"`
	Contents        []models.Content       `json:"contentData"`
	FeedbackReplies []models.FeedbackReply `json:"feedbackReplies"`
	EmailReplies    []models.EmailReply    `json:"emailReplies"`
}

// FileStore keeps all five collections fully in memory and persists them
// to a single JSON file. A failed write is logged and swallowed: memory
// stays authoritative for the rest of the process lifetime. The mutex
// serializes every operation, so read-after-write within one request is
// always consistent.
type FileStore struct {
	mu   sync.Mutex
	path string
	data snapshot
}

// OpenFileStore loads the snapshot at path, creating the parent directory
// if needed. A missing or unparseable file starts five empty collections;
// prior data in a corrupt file is silently lost, which the deployment
// accepts.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("store: could not parse %s, starting fresh: %v", path, err)
		s.data = snapshot{}
	}
	return s, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string { return s.path }

// Ping always succeeds: the file store is process-local.
func (s *FileStore) Ping(ctx context.Context) error { return nil }

// Close persists one final time.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
	return nil
}

// persistLocked rewrites the whole snapshot. Callers must hold s.mu.
func (s *FileStore) persistLocked() {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		log.Printf("store: marshal snapshot: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		log.Printf("store: write %s: %v", s.path, err)
	}
}

func page[T any](items []T, q query.Query) []T {
	if q.Limit <= 0 {
		q.Limit = query.DefaultLimit
	}
	if q.Offset >= len(items) {
		return []T{}
	}
	end := q.Offset + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[q.Offset:end]
}

// ── Feedback ──

func (s *FileStore) AddFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = newID()
	if f.CreatedAt == "" {
		f.CreatedAt = nowISO()
	}
	// newest first
	s.data.Feedback = append([]models.Feedback{f}, s.data.Feedback...)
	s.persistLocked()
	return f, nil
}

// feedbackMatches applies the query's filters to one record. Records with
// status "deleted" are excluded unless the query filters on status
// explicitly; an explicit neq.deleted is equivalent to that default.
// Filters on fields feedback does not have are ignored.
func feedbackMatches(rec models.Feedback, q query.Query) bool {
	if !q.Has("status") && rec.Status == models.StatusDeleted {
		return false
	}
	for _, f := range q.Filters {
		var v string
		switch f.Field {
		case "id":
			v = rec.ID
		case "status":
			v = string(rec.Status)
		case "type":
			v = rec.Type
		case "email":
			v = rec.Email
		case "is_read":
			v = strconv.FormatBool(rec.IsRead)
		default:
			continue
		}
		if !f.Match(v) {
			return false
		}
	}
	return true
}

func (s *FileStore) ListFeedback(ctx context.Context, q query.Query) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// An id filter collapses list semantics to at most one record and
	// bypasses pagination.
	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		for _, rec := range s.data.Feedback {
			if rec.ID == f.Value {
				return []models.Feedback{rec}, nil
			}
		}
		return []models.Feedback{}, nil
	}

	matched := make([]models.Feedback, 0)
	for _, rec := range s.data.Feedback {
		if feedbackMatches(rec, q) {
			matched = append(matched, rec)
		}
	}
	return page(matched, q), nil
}

func (s *FileStore) CountFeedback(ctx context.Context, q query.Query) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rec := range s.data.Feedback {
		if feedbackMatches(rec, q) {
			n++
		}
	}
	return n, nil
}

func (s *FileStore) UpdateFeedback(ctx context.Context, id string, patch models.FeedbackPatch) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Feedback {
		rec := &s.data.Feedback[i]
		if rec.ID != id {
			continue
		}
		if patch.Status != nil {
			if !models.ValidFeedbackStatus(*patch.Status) {
				return models.Feedback{}, ErrInvalidStatus
			}
			if !models.FeedbackStatusAllowed(rec.Status, *patch.Status) {
				return models.Feedback{}, ErrInvalidTransition
			}
			rec.Status = *patch.Status
		}
		if patch.IsRead != nil {
			rec.IsRead = *patch.IsRead
		}
		if patch.Name != nil {
			rec.Name = *patch.Name
		}
		if patch.Email != nil {
			rec.Email = *patch.Email
		}
		if patch.Phone != nil {
			rec.Phone = *patch.Phone
		}
		s.persistLocked()
		return *rec, nil
	}
	return models.Feedback{}, ErrNotFound
}

func (s *FileStore) MarkAllFeedbackRead(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.data.Feedback {
		if !s.data.Feedback[i].IsRead {
			s.data.Feedback[i].IsRead = true
			updated++
		}
	}
	if updated > 0 {
		s.persistLocked()
	}
	return updated, nil
}

// DeleteFeedback physically removes the record. Replies are left in place
// with a dangling foreign key; there is no cascade.
func (s *FileStore) DeleteFeedback(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.data.Feedback {
		if rec.ID == id {
			s.data.Feedback = append(s.data.Feedback[:i], s.data.Feedback[i+1:]...)
			s.persistLocked()
			return nil
		}
	}
	return ErrNotFound
}

func (s *FileStore) AddFeedbackReply(ctx context.Context, r models.FeedbackReply) (models.FeedbackReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = newID()
	if r.CreatedAt == "" {
		r.CreatedAt = nowISO()
	}
	s.data.FeedbackReplies = append([]models.FeedbackReply{r}, s.data.FeedbackReplies...)
	s.persistLocked()
	return r, nil
}

func (s *FileStore) ListFeedbackReplies(ctx context.Context, feedbackID string) ([]models.FeedbackReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replies := make([]models.FeedbackReply, 0)
	for _, r := range s.data.FeedbackReplies {
		if r.FeedbackID == feedbackID {
			replies = append(replies, r)
		}
	}
	return replies, nil
}

// ── Emails ──

func (s *FileStore) AddEmail(ctx context.Context, e models.Email) (models.Email, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = newID()
	if e.CreatedAt == "" {
		e.CreatedAt = nowISO()
	}
	s.data.Emails = append([]models.Email{e}, s.data.Emails...)
	s.persistLocked()
	return e, nil
}

func emailMatches(rec models.Email, q query.Query) bool {
	if !q.Has("status") && rec.Status == models.StatusDeleted {
		return false
	}
	for _, f := range q.Filters {
		var v string
		switch f.Field {
		case "id":
			v = rec.ID
		case "status":
			v = string(rec.Status)
		case "sender_email":
			v = rec.SenderEmail
		case "recipient_email":
			v = rec.RecipientEmail
		case "is_read":
			v = strconv.FormatBool(rec.IsRead)
		default:
			continue
		}
		if !f.Match(v) {
			return false
		}
	}
	return true
}

func (s *FileStore) ListEmails(ctx context.Context, q query.Query) ([]models.Email, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		for _, rec := range s.data.Emails {
			if rec.ID == f.Value {
				return []models.Email{rec}, nil
			}
		}
		return []models.Email{}, nil
	}

	matched := make([]models.Email, 0)
	for _, rec := range s.data.Emails {
		if emailMatches(rec, q) {
			matched = append(matched, rec)
		}
	}
	return page(matched, q), nil
}

func (s *FileStore) CountEmails(ctx context.Context, q query.Query) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rec := range s.data.Emails {
		if emailMatches(rec, q) {
			n++
		}
	}
	return n, nil
}

func (s *FileStore) UpdateEmail(ctx context.Context, id string, patch models.EmailPatch) (models.Email, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Emails {
		rec := &s.data.Emails[i]
		if rec.ID != id {
			continue
		}
		if patch.Status != nil {
			if !models.ValidEmailStatus(*patch.Status) {
				return models.Email{}, ErrInvalidStatus
			}
			if !models.EmailStatusAllowed(rec.Status, *patch.Status) {
				return models.Email{}, ErrInvalidTransition
			}
			rec.Status = *patch.Status
		}
		if patch.IsRead != nil {
			rec.IsRead = *patch.IsRead
		}
		if patch.UpdatedAt != nil {
			rec.UpdatedAt = *patch.UpdatedAt
		}
		s.persistLocked()
		return *rec, nil
	}
	return models.Email{}, ErrNotFound
}

func (s *FileStore) MarkAllEmailsRead(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.data.Emails {
		if !s.data.Emails[i].IsRead {
			s.data.Emails[i].IsRead = true
			updated++
		}
	}
	if updated > 0 {
		s.persistLocked()
	}
	return updated, nil
}

func (s *FileStore) DeleteEmail(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.data.Emails {
		if rec.ID == id {
			s.data.Emails = append(s.data.Emails[:i], s.data.Emails[i+1:]...)
			s.persistLocked()
			return nil
		}
	}
	return ErrNotFound
}

func (s *FileStore) AddEmailReply(ctx context.Context, r models.EmailReply) (models.EmailReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = newID()
	if r.CreatedAt == "" {
		r.CreatedAt = nowISO()
	}
	s.data.EmailReplies = append([]models.EmailReply{r}, s.data.EmailReplies...)
	s.persistLocked()
	return r, nil
}

func (s *FileStore) ListEmailReplies(ctx context.Context, emailID string) ([]models.EmailReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replies := make([]models.EmailReply, 0)
	for _, r := range s.data.EmailReplies {
		if r.EmailID == emailID {
			replies = append(replies, r)
		}
	}
	return replies, nil
}

// ── Content ──

func (s *FileStore) AddContent(ctx context.Context, c models.Content) (models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = newID()
	if c.CreatedAt == "" {
		c.CreatedAt = nowISO()
	}
	s.data.Contents = append([]models.Content{c}, s.data.Contents...)
	s.persistLocked()
	return c, nil
}

// contentMatches excludes soft-deleted blocks unless the query filters on
// is_deleted explicitly (the admin listing uses is_deleted=eq.true to
// inspect the recycle bin).
func contentMatches(rec models.Content, q query.Query) bool {
	if !q.Has("is_deleted") && rec.IsDeleted {
		return false
	}
	for _, f := range q.Filters {
		var v string
		switch f.Field {
		case "id":
			v = rec.ID
		case "location":
			v = rec.Location
		case "slot":
			v = rec.Slot
		case "is_published":
			v = strconv.FormatBool(rec.IsPublished)
		case "is_deleted":
			v = strconv.FormatBool(rec.IsDeleted)
		default:
			continue
		}
		if !f.Match(v) {
			return false
		}
	}
	return true
}

func (s *FileStore) ListContent(ctx context.Context, q query.Query) ([]models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		for _, rec := range s.data.Contents {
			if rec.ID == f.Value {
				return []models.Content{rec}, nil
			}
		}
		return []models.Content{}, nil
	}

	matched := make([]models.Content, 0)
	for _, rec := range s.data.Contents {
		if contentMatches(rec, q) {
			matched = append(matched, rec)
		}
	}
	return page(matched, q), nil
}

func (s *FileStore) CountContent(ctx context.Context, q query.Query) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rec := range s.data.Contents {
		if contentMatches(rec, q) {
			n++
		}
	}
	return n, nil
}

func (s *FileStore) UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Contents {
		rec := &s.data.Contents[i]
		if rec.ID != id {
			continue
		}
		if patch.Location != nil {
			rec.Location = *patch.Location
		}
		if patch.Slot != nil {
			rec.Slot = *patch.Slot
		}
		if patch.Title != nil {
			rec.Title = *patch.Title
		}
		if patch.Body != nil {
			rec.Body = *patch.Body
		}
		if patch.ImageURL != nil {
			rec.ImageURL = *patch.ImageURL
		}
		if patch.IsPublished != nil {
			rec.IsPublished = *patch.IsPublished
		}
		if patch.IsDeleted != nil {
			rec.IsDeleted = *patch.IsDeleted
		}
		s.persistLocked()
		return *rec, nil
	}
	return models.Content{}, ErrNotFound
}

// DeleteContent soft-deletes: the block is unpublished and flagged, never
// physically removed.
func (s *FileStore) DeleteContent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Contents {
		rec := &s.data.Contents[i]
		if rec.ID == id {
			rec.IsDeleted = true
			rec.IsPublished = false
			s.persistLocked()
			return nil
		}
	}
	return ErrNotFound
}
