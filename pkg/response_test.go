package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKeyCoversDomainErrors(t *testing.T) {
	tests := []struct {
		err error
		key string
	}{
		{ErrTopicAlreadyMuted, "mute.topicAlreadyMuted"},
		{ErrTopicNotMuted, "mute.topicNotMuted"},
		{ErrUserAlreadyMuted, "mute.userAlreadyMuted"},
		{ErrUserNotMuted, "mute.userNotMuted"},
		{ErrCannotMuteSelf, "mute.cannotMuteSelf"},
		{ErrInvalidOperation, "mute.invalidOperation"},
		{ErrAmbiguousStreamRef, "stream.ambiguousRef"},
		{ErrInvalidStreamID, "stream.invalidStreamId"},
		{ErrInvalidStreamName, "stream.invalidStreamName"},
		{ErrNoSuchUser, "user.noSuchUser"},
	}

	for _, tt := range tests {
		key, ok := errorKey(tt.err)
		require.True(t, ok, "expected a translation key for %v", tt.err)
		assert.Equal(t, tt.key, key)
	}

	// Base sentinel'lerin kendisi çeviri almaz — raw mesajla düşer
	_, ok := errorKey(ErrInternal)
	assert.False(t, ok)
}

func TestMapErrorToStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, mapErrorToStatus(ErrTopicAlreadyMuted))
	assert.Equal(t, http.StatusNotFound, mapErrorToStatus(ErrUserNotMuted))
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(ErrAmbiguousStreamRef))
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(ErrCannotMuteSelf))
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(ErrNoSuchUser))
	assert.Equal(t, http.StatusInternalServerError, mapErrorToStatus(ErrInternal))
}
