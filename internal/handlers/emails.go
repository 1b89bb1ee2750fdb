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

type SendEmailRequest struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	SenderPhone string `json:"sender_phone"`
	Message     string `json:"message"`
}

// SendEmail accepts a public contact-form message. The record is stored
// first; a failed admin notification only degrades the response message.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.SenderName = strings.TrimSpace(req.SenderName)
	req.SenderEmail = strings.TrimSpace(req.SenderEmail)
	req.Message = strings.TrimSpace(req.Message)
	if req.SenderName == "" || req.SenderEmail == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}
	if !strings.Contains(req.SenderEmail, "@") {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
		Verb:  store.VerbInsert,
		Payload: models.Email{
			SenderName:     req.SenderName,
			SenderEmail:    req.SenderEmail,
			SenderPhone:    strings.TrimSpace(req.SenderPhone),
			Message:        req.Message,
			RecipientEmail: h.Cfg.MailAdminTo,
			Status:         models.StatusSent,
		},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	message := "Message sent successfully"
	if err := h.Mailer.NotifyContactMessage(req.SenderName, req.SenderEmail, req.Message); err != nil {
		log.Printf("⚠️ Contact notification email failed: %v", err)
		message = "Message sent successfully (Email sending failed, but admin will see it)"
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": message,
		"data":    resp.Data[0],
	})
}

// ListEmails returns contact messages for the admin dashboard, honoring
// eq/neq filters, limit, offset and select=count.
func (h *Handler) ListEmails(w http.ResponseWriter, r *http.Request) {
	q := query.ParseValues(r.URL.Query(), query.DefaultLimit)
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
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
		"success": true,
		"emails":  resp.Data,
		"count":   len(resp.Data),
	})
}

// GetEmail returns one contact message together with its replies.
func (h *Handler) GetEmail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1},
	})
	if err != nil {
		storeError(w, resp)
		return
	}
	if len(resp.Data) == 0 {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	replies, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmailReplies,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: []query.Filter{query.Eq("email_id", id)}},
	})
	if err != nil {
		storeError(w, replies)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"email": struct {
			models.Email
			Replies []any `json:"replies"`
		}{resp.Data[0].(models.Email), replies.Data},
	})
}

// UpdateEmailStatus changes a contact message's status, rejecting
// transitions the workflow does not allow.
func (h *Handler) UpdateEmailStatus(w http.ResponseWriter, r *http.Request) {
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
	now := nowISO()
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table:   store.TableEmails,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.EmailPatch{Status: &status, UpdatedAt: &now},
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

// MarkEmailRead flags one contact message as read.
func (h *Handler) MarkEmailRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	isRead := true
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table:   store.TableEmails,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.EmailPatch{IsRead: &isRead},
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

// ReplyEmail stores an admin reply, moves the message to replied and emails
// the reply to the sender.
func (h *Handler) ReplyEmail(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.text() == "" {
		writeError(w, http.StatusBadRequest, "Reply message is required")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		id = req.EmailID
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "Email id is required")
		return
	}

	parent, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1},
	})
	if err != nil {
		storeError(w, parent)
		return
	}
	if len(parent.Data) == 0 {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}
	email := parent.Data[0].(models.Email)

	reply, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmailReplies,
		Verb:  store.VerbInsert,
		Payload: models.EmailReply{
			EmailID:      id,
			AdminID:      identity.ID.String(),
			AdminName:    identity.Name,
			ReplyMessage: req.text(),
		},
	})
	if err != nil {
		storeError(w, reply)
		return
	}

	replied := models.StatusReplied
	now := nowISO()
	if _, err := h.DB.Do(r.Context(), store.Request{
		Table:   store.TableEmails,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.EmailPatch{Status: &replied, UpdatedAt: &now},
	}); err != nil {
		log.Printf("⚠️ Could not update email %s status after reply: %v", id, err)
	}

	message := "Reply sent"
	if err := h.Mailer.SendReply(email.SenderEmail, identity.Name, req.text(), email.Message); err != nil {
		log.Printf("⚠️ Reply email failed for message %s: %v", id, err)
		message = "Reply saved (Email sending failed, but admin will see it)"
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": message,
		"data":    reply.Data[0],
	})
}

// ResendEmail re-sends the admin notification for a stored contact message
// and resets its status to sent.
func (h *Handler) ResendEmail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	parent, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
		Verb:  store.VerbSelect,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1},
	})
	if err != nil {
		storeError(w, parent)
		return
	}
	if len(parent.Data) == 0 {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}
	email := parent.Data[0].(models.Email)

	message := "Message resent"
	if err := h.Mailer.NotifyContactMessage(email.SenderName, email.SenderEmail, email.Message); err != nil {
		log.Printf("⚠️ Resend failed for message %s: %v", id, err)
		message = "Resend failed, message kept for admin review"
	}

	sent := models.StatusSent
	now := nowISO()
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table:   store.TableEmails,
		Verb:    store.VerbUpdate,
		Query:   query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.EmailPatch{Status: &sent, UpdatedAt: &now},
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidTransition) {
			writeError(w, http.StatusBadRequest, "Status change not allowed")
			return
		}
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"data":    resp.Data[0],
	})
}

// DeleteEmail removes a contact message permanently.
func (h *Handler) DeleteEmail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableEmails,
		Verb:  store.VerbDelete,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message deleted",
	})
}
