package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/akis/pkg"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(s string) *string { return &s }

func TestStreamRefValidate(t *testing.T) {
	tests := []struct {
		name    string
		ref     StreamRef
		wantErr bool
	}{
		{
			name: "only stream_id",
			ref:  StreamRef{StreamID: int64Ptr(5)},
		},
		{
			name: "only stream name",
			ref:  StreamRef{StreamName: strPtr("design")},
		},
		{
			name:    "both provided",
			ref:     StreamRef{StreamID: int64Ptr(5), StreamName: strPtr("design")},
			wantErr: true,
		},
		{
			name:    "neither provided",
			ref:     StreamRef{},
			wantErr: true,
		},
		{
			name:    "name is only whitespace",
			ref:     StreamRef{StreamName: strPtr("   ")},
			wantErr: true,
		},
		{
			name: "id zero is still a provided id",
			ref:  StreamRef{StreamID: int64Ptr(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr {
				// Referans ihlali sentinel döner — handler katmanı bunu
				// localize edilmiş mesaja ve 400'e eşler
				assert.ErrorIs(t, err, pkg.ErrAmbiguousStreamRef)
				assert.ErrorIs(t, err, pkg.ErrBadRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStreamRefByName(t *testing.T) {
	assert.True(t, (&StreamRef{StreamName: strPtr("design")}).ByName())
	assert.False(t, (&StreamRef{StreamID: int64Ptr(5)}).ByName())
	assert.False(t, (&StreamRef{StreamName: strPtr("  ")}).ByName())
}

func TestUpdateTopicMuteRequestValidate(t *testing.T) {
	t.Run("valid request trims topic", func(t *testing.T) {
		req := UpdateTopicMuteRequest{
			StreamRef: StreamRef{StreamID: int64Ptr(5)},
			Topic:     "  weather  ",
			Op:        MuteOpAdd,
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, "weather", req.Topic)
	})

	t.Run("empty topic rejected", func(t *testing.T) {
		req := UpdateTopicMuteRequest{
			StreamRef: StreamRef{StreamID: int64Ptr(5)},
			Topic:     "   ",
			Op:        MuteOpAdd,
		}
		assert.Error(t, req.Validate())
	})

	t.Run("overlong topic rejected", func(t *testing.T) {
		topic := make([]rune, 61)
		for i := range topic {
			topic[i] = 'a'
		}
		req := UpdateTopicMuteRequest{
			StreamRef: StreamRef{StreamID: int64Ptr(5)},
			Topic:     string(topic),
			Op:        MuteOpAdd,
		}
		assert.Error(t, req.Validate())
	})

	t.Run("invalid stream ref rejected before topic", func(t *testing.T) {
		req := UpdateTopicMuteRequest{
			Topic: "weather",
			Op:    MuteOpAdd,
		}
		assert.Error(t, req.Validate())
	})
}
