package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/services"
)

// UserHandler, kullanıcı profil endpoint'lerini yöneten struct.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler, constructor.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateLanguage godoc
// PATCH /api/users/me/language
// Body: { "language": "en" | "tr" }
// Mute error mesajları bu tercihle localize edilir.
func (h *UserHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Language string `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.UpdateLanguage(r.Context(), user.ID, req.Language); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"language": req.Language})
}
