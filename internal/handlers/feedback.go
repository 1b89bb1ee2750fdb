package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zidalco/zidalco-backend/internal/middleware"
	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
	"github.com/zidalco/zidalco-backend/internal/store"
)

type SubmitFeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SubmitFeedback accepts a public feedback submission. A failed admin
// notification never fails the request; the response message notes it.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if req.Type == "" {
		req.Type = "general"
	}

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedback,
		Verb:  store.VerbInsert,
		Payload: models.Feedback{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   strings.TrimSpace(req.Phone),
			Message: req.Message,
			Type:    req.Type,
			Status:  models.StatusNew,
		},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	message := "Feedback submitted successfully"
	if err := h.Mailer.NotifyFeedback(req.Name, req.Email, req.Type, req.Message); err != nil {
		log.Printf("⚠️ Feedback notification email failed: %v", err)
		message = "Feedback submitted successfully (Email sending failed, but admin will see it)"
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": message,
		"data":    resp.Data[0],
	})
}

// ListFeedback returns feedback for the admin dashboard. It honors eq/neq
// filters, limit and offset, and select=count returns only the count.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	q := query.ParseValues(r.URL.Query(), query.DefaultLimit)
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedback,
		Verb:  store.VerbSelect,
		Query: q,
	})
	if err != nil {
		storeError(w, resp)
		return
	}
	if q.CountOnly {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    resp.Data,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"feedback": resp.Data,
		"count":    len(resp.Data),
	})
}

// GetFeedback returns one feedback record together with its replies.
func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedback,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1},
	})
	if err != nil {
		storeError(w, resp)
		return
	}
	if len(resp.Data) == 0 {
		writeError(w, http.StatusNotFound, "Feedback not found")
		return
	}

	replies, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedbackReplies,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: []query.Filter{query.Eq("feedback_id", id)}},
	})
	if err != nil {
		storeError(w, replies)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"feedback": struct {
			models.Feedback
			Replies []any `json:"replies"`
		}{resp.Data[0].(models.Feedback), replies.Data},
	})
}

// StatusUpdateRequest carries a status change. The id can come from the
// URL or, on the body-variant route, from the body itself.
type StatusUpdateRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateFeedbackStatus changes a feedback record's status, rejecting
// transitions the workflow does not allow.
func (h *Handler) UpdateFeedbackStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "Record id is required")
		return
	}

	status := models.Status(req.Status)
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table:   store.TableFeedback,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.FeedbackPatch{Status: &status},
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Unknown status value")
		case errors.Is(err, store.ErrInvalidTransition):
			writeError(w, http.StatusBadRequest, "Status change not allowed")
		default:
			storeError(w, resp)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Status updated",
		"data":    resp.Data[0],
	})
}

// MarkFeedbackRead flags one feedback record as read.
func (h *Handler) MarkFeedbackRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	isRead := true
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table:   store.TableFeedback,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.FeedbackPatch{IsRead: &isRead},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Marked as read",
		"data":    resp.Data[0],
	})
}

// ReplyRequest carries an admin reply. The parent id comes from the URL
// or, on the body-variant route, from feedback_id / email_id. The reply
// text is accepted as reply_message or message.
type ReplyRequest struct {
	FeedbackID   string `json:"feedback_id"`
	EmailID      string `json:"email_id"`
	ReplyMessage string `json:"reply_message"`
	Message      string `json:"message"`
}

func (r ReplyRequest) text() string {
	if s := strings.TrimSpace(r.ReplyMessage); s != "" {
		return s
	}
	return strings.TrimSpace(r.Message)
}

// ReplyFeedback stores an admin reply, moves the feedback to replied and
// emails the reply to the submitter. Email failure degrades the message
// instead of failing the request.
func (h *Handler) ReplyFeedback(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.text() == "" {
		writeError(w, http.StatusBadRequest, "Reply message is required")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		id = req.FeedbackID
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "Feedback id is required")
		return
	}

	parent, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedback,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1},
	})
	if err != nil {
		storeError(w, parent)
		return
	}
	if len(parent.Data) == 0 {
		writeError(w, http.StatusNotFound, "Feedback not found")
		return
	}
	feedback := parent.Data[0].(models.Feedback)

	reply, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedbackReplies,
		Verb:  store.VerbInsert,
		Payload: models.FeedbackReply{
			FeedbackID:   id,
			ReplyMessage: req.text(),
			AdminName:    identity.Name,
		},
	})
	if err != nil {
		storeError(w, reply)
		return
	}

	replied := models.StatusReplied
	if _, err := h.DB.Do(r.Context(), store.Request{
		Table:   store.TableFeedback,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.FeedbackPatch{Status: &replied},
	}); err != nil {
		log.Printf("⚠️ Could not update feedback %s status after reply: %v", id, err)
	}

	message := "Reply sent"
	if err := h.Mailer.SendReply(feedback.Email, identity.Name, req.text(), feedback.Message); err != nil {
		log.Printf("⚠️ Reply email failed for feedback %s: %v", id, err)
		message = "Reply saved (Email sending failed, but admin will see it)"
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": message,
		"data":    reply.Data[0],
	})
}

// DeleteFeedback removes a feedback record permanently.
func (h *Handler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableFeedback,
		Verb:  store.VerbDelete,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Feedback deleted",
	})
}
