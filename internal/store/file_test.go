package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return s
}

func addFeedback(t *testing.T, s *FileStore, name string, status models.Status) models.Feedback {
	t.Helper()
	f, err := s.AddFeedback(context.Background(), models.Feedback{
		Name:    name,
		Email:   name + "@example.com",
		Message: "hello from " + name,
		Type:    "general",
		Status:  status,
	})
	require.NoError(t, err)
	return f
}

func TestAddFeedbackAssignsUniqueIDs(t *testing.T) {
	s := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		f := addFeedback(t, s, "visitor", models.StatusNew)
		assert.NotEmpty(t, f.ID)
		assert.NotEmpty(t, f.CreatedAt)
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
	}
}

func TestListFeedbackNewestFirst(t *testing.T) {
	s := newTestStore(t)
	first := addFeedback(t, s, "first", models.StatusNew)
	second := addFeedback(t, s, "second", models.StatusNew)

	list, err := s.ListFeedback(context.Background(), query.Query{Limit: query.DefaultLimit})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestListFeedbackExcludesDeletedByDefault(t *testing.T) {
	s := newTestStore(t)
	addFeedback(t, s, "kept", models.StatusNew)
	gone := addFeedback(t, s, "gone", models.StatusDeleted)

	list, err := s.ListFeedback(context.Background(), query.Query{Limit: query.DefaultLimit})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].Name)

	// explicit status filter makes deleted records visible
	deletedList, err := s.ListFeedback(context.Background(), query.Query{
		Filters: []query.Filter{query.Eq("status", "deleted")},
		Limit:   query.DefaultLimit,
	})
	require.NoError(t, err)
	require.Len(t, deletedList, 1)
	assert.Equal(t, gone.ID, deletedList[0].ID)
}

func TestListFeedbackIDFilterShortCircuits(t *testing.T) {
	s := newTestStore(t)
	deleted := addFeedback(t, s, "tombstone", models.StatusDeleted)
	addFeedback(t, s, "other", models.StatusNew)

	// the id lookup ignores both pagination and the deleted default
	list, err := s.ListFeedback(context.Background(), query.Query{
		Filters: []query.Filter{query.Eq("id", deleted.ID)},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, deleted.ID, list[0].ID)

	missing, err := s.ListFeedback(context.Background(), query.Query{
		Filters: []query.Filter{query.Eq("id", "nope")},
	})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestListFeedbackPagination(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		addFeedback(t, s, "visitor", models.StatusNew)
	}

	list, err := s.ListFeedback(context.Background(), query.Query{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	past, err := s.ListFeedback(context.Background(), query.Query{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestUpdateFeedbackStatusTransitions(t *testing.T) {
	s := newTestStore(t)
	f := addFeedback(t, s, "visitor", models.StatusNew)

	replied := models.StatusReplied
	updated, err := s.UpdateFeedback(context.Background(), f.ID, models.FeedbackPatch{Status: &replied})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReplied, updated.Status)

	// replied cannot go back to new
	backToNew := models.StatusNew
	_, err = s.UpdateFeedback(context.Background(), f.ID, models.FeedbackPatch{Status: &backToNew})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// unknown status values are rejected outright
	bogus := models.Status("archived")
	_, err = s.UpdateFeedback(context.Background(), f.ID, models.FeedbackPatch{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.UpdateFeedback(context.Background(), "missing", models.FeedbackPatch{Status: &replied})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllFeedbackReadIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	addFeedback(t, s, "a", models.StatusNew)
	addFeedback(t, s, "b", models.StatusNew)

	n, err := s.MarkAllFeedbackRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.MarkAllFeedbackRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDeleteFeedbackIsPhysical(t *testing.T) {
	s := newTestStore(t)
	f := addFeedback(t, s, "visitor", models.StatusNew)

	require.NoError(t, s.DeleteFeedback(context.Background(), f.ID))
	assert.ErrorIs(t, s.DeleteFeedback(context.Background(), f.ID), ErrNotFound)

	n, err := s.CountFeedback(context.Background(), query.Query{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFeedbackReplies(t *testing.T) {
	s := newTestStore(t)
	f := addFeedback(t, s, "visitor", models.StatusNew)

	r, err := s.AddFeedbackReply(context.Background(), models.FeedbackReply{
		FeedbackID:   f.ID,
		ReplyMessage: "thanks for reaching out",
		AdminName:    "Admin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)

	replies, err := s.ListFeedbackReplies(context.Background(), f.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, f.ID, replies[0].FeedbackID)

	none, err := s.ListFeedbackReplies(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEmailStatusTransitions(t *testing.T) {
	s := newTestStore(t)
	e, err := s.AddEmail(context.Background(), models.Email{
		SenderName:     "visitor",
		SenderEmail:    "visitor@example.com",
		Message:        "hello",
		RecipientEmail: "admin@zidalco.com",
		Status:         models.StatusSent,
	})
	require.NoError(t, err)

	replied := models.StatusReplied
	updated, err := s.UpdateEmail(context.Background(), e.ID, models.EmailPatch{Status: &replied})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReplied, updated.Status)

	// replied may return to sent (resend)
	sent := models.StatusSent
	updated, err = s.UpdateEmail(context.Background(), e.ID, models.EmailPatch{Status: &sent})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, updated.Status)

	// emails never use the feedback-only statuses
	resolved := models.StatusResolved
	_, err = s.UpdateEmail(context.Background(), e.ID, models.EmailPatch{Status: &resolved})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestContentSoftDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.AddContent(ctx, models.Content{
		Location:    "homepage",
		Slot:        "hero",
		Title:       "Welcome",
		IsPublished: true,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteContent(ctx, c.ID))

	// default listing hides it
	list, err := s.ListContent(ctx, query.Query{Limit: query.DefaultContentLimit})
	require.NoError(t, err)
	assert.Empty(t, list)

	// the record is still there, unpublished and flagged
	kept, err := s.ListContent(ctx, query.Query{
		Filters: []query.Filter{query.Eq("is_deleted", "true")},
		Limit:   query.DefaultContentLimit,
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.True(t, kept[0].IsDeleted)
	assert.False(t, kept[0].IsPublished)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	f, err := s.AddFeedback(ctx, models.Feedback{
		Name: "visitor", Email: "v@example.com", Message: "hi", Type: "general", Status: models.StatusNew,
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	list, err := reopened.ListFeedback(ctx, query.Query{Limit: query.DefaultLimit})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.ID, list[0].ID)
}

func TestOpenFileStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	list, err := s.ListFeedback(context.Background(), query.Query{Limit: query.DefaultLimit})
	require.NoError(t, err)
	assert.Empty(t, list)
}
