package pkg

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akinalp/akis/pkg/i18n"
)

// APIResponse, tüm API yanıtları için standart format.
// Frontend her zaman aynı yapıyı bekler — tutarlılık önemli.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON, başarılı bir yanıt gönderir.
// "any" Go'da generic tip — herhangi bir veri tipini kabul eder.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Error, hata yanıtı gönderir.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
func Error(w http.ResponseWriter, err error) {
	writeError(w, mapErrorToStatus(err), err.Error())
}

// LocalizedError, bilinen mute domain error'larını kullanıcının dilinde döner.
//
// Error mesajları API'nin kullanıcıya görünen yüzüdür — mute error'ları
// birebir frontend'de gösterildiği için i18n'den geçer. Tanınmayan
// error'lar Error() ile aynı şekilde (raw mesajla) düşer.
func LocalizedError(w http.ResponseWriter, loc *i18n.Localizer, err error) {
	if key, ok := errorKey(err); ok {
		writeError(w, mapErrorToStatus(err), loc.T(key))
		return
	}
	Error(w, err)
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// errorKey, domain error'ını i18n çeviri anahtarına eşler.
//
// Sıralama önemli: spesifik sentinel'ler base sentinel'leri %w ile sardığı
// için önce spesifik olanlar kontrol edilir.
func errorKey(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrTopicAlreadyMuted):
		return "mute.topicAlreadyMuted", true
	case errors.Is(err, ErrTopicNotMuted):
		return "mute.topicNotMuted", true
	case errors.Is(err, ErrUserAlreadyMuted):
		return "mute.userAlreadyMuted", true
	case errors.Is(err, ErrUserNotMuted):
		return "mute.userNotMuted", true
	case errors.Is(err, ErrCannotMuteSelf):
		return "mute.cannotMuteSelf", true
	case errors.Is(err, ErrInvalidOperation):
		return "mute.invalidOperation", true
	case errors.Is(err, ErrAmbiguousStreamRef):
		return "stream.ambiguousRef", true
	case errors.Is(err, ErrInvalidStreamID):
		return "stream.invalidStreamId", true
	case errors.Is(err, ErrInvalidStreamName):
		return "stream.invalidStreamName", true
	case errors.Is(err, ErrNoSuchUser):
		return "user.noSuchUser", true
	default:
		return "", false
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() kullanarak error chain'ini kontrol eder —
// wrap edilmiş error'lar da doğru match eder.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
