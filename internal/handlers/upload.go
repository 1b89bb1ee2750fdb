package handlers

import (
	"log"
	"net/http"
)

const maxUploadSize = 10 << 20 // 10 MB

// UploadImage stores a content image in Cloudinary and returns its URL.
// Returns 503 when Cloudinary is not configured.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.Uploads == nil {
		writeError(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload, max size is 10 MB")
		return
	}

	_, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "An image file is required")
		return
	}

	url, err := h.Uploads.UploadImage(r.Context(), header)
	if err != nil {
		log.Printf("⚠️ Image upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Upload failed. Please try again later.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Image uploaded",
		"url":     url,
	})
}
