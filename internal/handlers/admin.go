package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
	"github.com/zidalco/zidalco-backend/internal/store"
)

func (h *Handler) count(r *http.Request, table string, filters ...query.Filter) (int, error) {
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: table,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: filters, CountOnly: true},
	})
	if err != nil {
		return 0, err
	}
	row := resp.Data[0].(map[string]int)
	return row["count"], nil
}

// DashboardStats aggregates the counters shown on the admin dashboard.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	totalFeedback, err := h.count(r, store.TableFeedback)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load stats")
		return
	}
	newFeedback, err := h.count(r, store.TableFeedback, query.Eq("status", string(models.StatusNew)))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load stats")
		return
	}
	unreadFeedback, err := h.count(r, store.TableFeedback, query.Eq("is_read", "false"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load stats")
		return
	}
	totalEmails, err := h.count(r, store.TableEmails)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load stats")
		return
	}
	unreadEmails, err := h.count(r, store.TableEmails, query.Eq("is_read", "false"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load stats")
		return
	}
	publishedContents, err := h.count(r, store.TableContents, query.Eq("is_published", "true"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]int{
			"total_feedback":     totalFeedback,
			"new_feedback":       newFeedback,
			"unread_feedback":    unreadFeedback,
			"total_emails":       totalEmails,
			"unread_emails":      unreadEmails,
			"published_contents": publishedContents,
		},
	})
}

// Notifications lists unread feedback and contact messages as notification
// items for the admin dashboard bell.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	unread := query.Query{Filters: []query.Filter{query.Eq("is_read", "false")}, Limit: query.DefaultLimit}

	fb, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedback,
		Verb:  store.VerbSelect,
		Query: unread,
	})
	if err != nil {
		storeError(w, fb)
		return
	}
	em, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
		Verb:  store.VerbSelect,
		Query: unread,
	})
	if err != nil {
		storeError(w, em)
		return
	}

	notifications := make([]models.Notification, 0, len(fb.Data)+len(em.Data))
	for _, item := range fb.Data {
		f := item.(models.Feedback)
		notifications = append(notifications, models.Notification{
			ID:        f.ID,
			Type:      "feedback",
			Title:     "New feedback",
			Message:   f.Message,
			From:      f.Name,
			CreatedAt: f.CreatedAt,
			IsRead:    f.IsRead,
		})
	}
	for _, item := range em.Data {
		e := item.(models.Email)
		notifications = append(notifications, models.Notification{
			ID:        e.ID,
			Type:      "email",
			Title:     "New contact message",
			Message:   e.Message,
			From:      e.SenderName,
			CreatedAt: e.CreatedAt,
			IsRead:    e.IsRead,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    notifications,
	})
}

type MarkNotificationRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// MarkNotificationRead marks the record behind one notification as read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	var req MarkNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "Notification type and id are required")
		return
	}

	var table string
	var payload any
	isRead := true
	switch req.Type {
	case "feedback":
		table = store.TableFeedback
		payload = models.FeedbackPatch{IsRead: &isRead}
	case "email":
		table = store.TableEmails
		payload = models.EmailPatch{IsRead: &isRead}
	default:
		writeError(w, http.StatusBadRequest, "Unknown notification type")
		return
	}

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table:   table,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", req.ID)}},
		Payload: payload,
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead marks every unread feedback and contact message
// as read and reports how many records changed.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	markAll := query.Query{Filters: []query.Filter{query.Eq("is_read", "false")}}

	fb, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedback,
		Verb:  store.VerbUpdate,
		Query: markAll,
	})
	if err != nil {
		storeError(w, fb)
		return
	}
	em, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
		Verb:  store.VerbUpdate,
		Query: markAll,
	})
	if err != nil {
		storeError(w, em)
		return
	}

	fbCount := fb.Data[0].(map[string]int)["count"]
	emCount := em.Data[0].(map[string]int)["count"]

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "All notifications marked as read",
		"data": map[string]int{
			"feedback_marked": fbCount,
			"emails_marked":   emCount,
		},
	})
}
