package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/services"
)

// StreamHandler, stream kataloğu endpoint'lerini yöneten struct.
type StreamHandler struct {
	streamService services.StreamService
}

// NewStreamHandler, constructor.
func NewStreamHandler(streamService services.StreamService) *StreamHandler {
	return &StreamHandler{streamService: streamService}
}

// Create godoc
// POST /api/streams
// Body: { "name": "design", "description": "...", "is_private": false }
// Oluşturan kullanıcı otomatik abone olur.
func (h *StreamHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"is_private"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stream, err := h.streamService.CreateStream(r.Context(), user, req.Name, req.Description, req.IsPrivate)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, stream)
}

// List godoc
// GET /api/streams
// Kullanıcının görebildiği stream'leri döner.
func (h *StreamHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	streams, err := h.streamService.ListStreams(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if streams == nil {
		streams = []models.Stream{}
	}

	pkg.JSON(w, http.StatusOK, streams)
}

// Subscribe godoc
// POST /api/streams/{id}/subscribe
func (h *StreamHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	streamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid stream id")
		return
	}

	if err := h.streamService.Subscribe(r.Context(), user, streamID); err != nil {
		loc := localizerFor(r, user)
		pkg.LocalizedError(w, loc, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "subscribed"})
}
