package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocales() fstest.MapFS {
	return fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{
			"auth": {"tooManyAttempts": "Try again in {{seconds}} seconds"},
			"mute": {"topicNotMuted": "Topic is not muted"}
		}`)},
		"tr.json": &fstest.MapFile{Data: []byte(`{
			"mute": {"topicNotMuted": "Konu sessize alınmamış"}
		}`)},
	}
}

func TestLocalizer(t *testing.T) {
	require.NoError(t, Load(testLocales()))

	t.Run("translates nested keys", func(t *testing.T) {
		assert.Equal(t, "Topic is not muted", NewLocalizer("en").T("mute.topicNotMuted"))
		assert.Equal(t, "Konu sessize alınmamış", NewLocalizer("tr").T("mute.topicNotMuted"))
	})

	t.Run("falls back to english then to the key", func(t *testing.T) {
		loc := NewLocalizer("tr")
		assert.Equal(t, "Try again in {{seconds}} seconds", loc.T("auth.tooManyAttempts"))
		assert.Equal(t, "mute.unknownKey", loc.T("mute.unknownKey"))
	})

	t.Run("unsupported language falls back to default", func(t *testing.T) {
		assert.Equal(t, "Topic is not muted", NewLocalizer("de").T("mute.topicNotMuted"))
	})

	t.Run("substitutes params", func(t *testing.T) {
		msg := NewLocalizer("en").TWithParams("auth.tooManyAttempts",
			map[string]string{"seconds": "42"})
		assert.Equal(t, "Try again in 42 seconds", msg)
	})
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "tr", DetectLanguage("tr-TR,tr;q=0.9,en-US;q=0.8"))
	assert.Equal(t, "en", DetectLanguage("en-US,en;q=0.9"))
	assert.Equal(t, "en", DetectLanguage("de-DE,de;q=0.9"))
	assert.Equal(t, "en", DetectLanguage(""))
}
