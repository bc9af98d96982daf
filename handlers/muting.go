package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/pkg/i18n"
	"github.com/akinalp/akis/services"
)

// MuteHandler, topic ve kullanıcı sessize alma endpoint'lerini yöneten struct.
//
// Mute error'ları kullanıcıya birebir gösterildiği için yanıtlar i18n'den
// geçer — dil, kullanıcının kayıtlı tercihinden gelir.
type MuteHandler struct {
	topicMuteService services.TopicMuteService
	userMuteService  services.UserMuteService
}

// NewMuteHandler, constructor.
func NewMuteHandler(topicMuteService services.TopicMuteService, userMuteService services.UserMuteService) *MuteHandler {
	return &MuteHandler{
		topicMuteService: topicMuteService,
		userMuteService:  userMuteService,
	}
}

// UpdateMutedTopics godoc
// PATCH /api/users/me/subscriptions/muted_topics
// Body: { "stream_id": 5 | "stream": "design", "topic": "weather", "op": "add" | "remove" }
//
// stream_id ve stream'den TAM OLARAK BİRİ verilmelidir.
func (h *MuteHandler) UpdateMutedTopics(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}
	loc := localizerFor(r, user)

	var req models.UpdateTopicMuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.topicMuteService.UpdateMutedTopic(r.Context(), user, &req); err != nil {
		pkg.LocalizedError(w, loc, err)
		return
	}

	message := loc.T("mute.topicMuted")
	if req.Op == models.MuteOpRemove {
		message = loc.T("mute.topicUnmuted")
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": message})
}

// ListMutedTopics godoc
// GET /api/users/me/subscriptions/muted_topics
// Kullanıcının mute kayıtlarını eskiden yeniye döner.
func (h *MuteHandler) ListMutedTopics(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	mutes, err := h.topicMuteService.ListMutedTopics(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if mutes == nil {
		mutes = []models.MutedTopic{}
	}

	pkg.JSON(w, http.StatusOK, mutes)
}

// MuteUser godoc
// POST /api/users/me/muted_users/{id}
// Hedef kullanıcıyı sessize alır. Body gerekmez — hedef path'te.
func (h *MuteHandler) MuteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}
	loc := localizerFor(r, user)

	targetID, err := parseUserID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userMuteService.MuteUser(r.Context(), user, targetID); err != nil {
		pkg.LocalizedError(w, loc, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": loc.T("mute.userMuted")})
}

// UnmuteUser godoc
// DELETE /api/users/me/muted_users/{id}
func (h *MuteHandler) UnmuteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}
	loc := localizerFor(r, user)

	targetID, err := parseUserID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userMuteService.UnmuteUser(r.Context(), user, targetID); err != nil {
		pkg.LocalizedError(w, loc, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": loc.T("mute.userUnmuted")})
}

// ListMutedUsers godoc
// GET /api/users/me/muted_users
// Kullanıcının mute ettiği kullanıcıları eskiden yeniye döner.
func (h *MuteHandler) ListMutedUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	mutes, err := h.userMuteService.ListMutedUsers(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if mutes == nil {
		mutes = []models.MutedUser{}
	}

	pkg.JSON(w, http.StatusOK, mutes)
}

// parseUserID, path'teki {id} segmentini int64'e çevirir.
// Go 1.22+ method pattern'leri: r.PathValue("id") route'daki {id}'yi döner.
func parseUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// localizerFor, yanıt dili için Localizer seçer.
// Kayıtlı dil tercihi önceliklidir; yoksa Accept-Language header'ına bakılır.
func localizerFor(r *http.Request, user *models.User) *i18n.Localizer {
	lang := user.Language
	if lang == "" {
		lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	}
	return i18n.NewLocalizer(lang)
}
