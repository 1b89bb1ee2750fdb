package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
	"github.com/zidalco/zidalco-backend/internal/store"
)

// PublicContents returns published homepage content. Visitors can narrow by
// location and slot; unpublished and deleted entries never appear here.
func (h *Handler) PublicContents(w http.ResponseWriter, r *http.Request) {
	q := query.ParseValues(r.URL.Query(), query.DefaultContentLimit)
	q = q.With(query.Eq("is_published", "true"))

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableContents,
		Verb:  store.VerbSelect,
		Query: q,
	})
	if err != nil {
		storeError(w, resp)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"contents": resp.Data,
	})
}

// ListContents returns all content entries for the admin dashboard,
// including unpublished ones.
func (h *Handler) ListContents(w http.ResponseWriter, r *http.Request) {
	q := query.ParseValues(r.URL.Query(), query.DefaultContentLimit)
	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableContents,
		Verb:  store.VerbSelect,
		Query: q,
	})
	if err != nil {
		storeError(w, resp)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    resp.Data,
	})
}

type ContentRequest struct {
	Location    string `json:"location"`
	Slot        string `json:"slot"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ImageURL    string `json:"image_url"`
	IsPublished bool   `json:"is_published"`
}

// CreateContent adds a homepage content entry.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Location = strings.TrimSpace(req.Location)
	req.Slot = strings.TrimSpace(req.Slot)
	if req.Location == "" || req.Slot == "" {
		writeError(w, http.StatusBadRequest, "Location and slot are required")
		return
	}

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableContents,
		Verb:  store.VerbInsert,
		Payload: models.Content{
			Location:    req.Location,
			Slot:        req.Slot,
			Title:       req.Title,
			Body:        req.Body,
			ImageURL:    req.ImageURL,
			IsPublished: req.IsPublished,
		},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Content created",
		"data":    resp.Data[0],
	})
}

type ContentPatchRequest struct {
	Location    *string `json:"location"`
	Slot        *string `json:"slot"`
	Title       *string `json:"title"`
	Body        *string `json:"body"`
	ImageURL    *string `json:"image_url"`
	IsPublished *bool   `json:"is_published"`
}

// UpdateContent patches a content entry; only the fields present in the
// body change.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ContentPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableContents,
		Verb:  store.VerbUpdate,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}},
		Payload: models.ContentPatch{
			Location:    req.Location,
			Slot:        req.Slot,
			Title:       req.Title,
			Body:        req.Body,
			ImageURL:    req.ImageURL,
			IsPublished: req.IsPublished,
		},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Content updated",
		"data":    resp.Data[0],
	})
}

// DeleteContent soft-deletes a content entry. It disappears from both the
// public and admin listings but stays in storage.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.DB.Do(r.Context(), store.Request{
		Table: store.TableContents,
		Verb:  store.VerbDelete,
		Query: query.Query{Filters: []query.Filter{query.Eq("id", id)}},
	})
	if err != nil {
		storeError(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Content deleted",
	})
}
