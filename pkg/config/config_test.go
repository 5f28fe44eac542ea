package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitReadsEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("IMAGE_MODEL", "custom-image")
	t.Setenv("MODEL_RPS", "0.5")
	t.Setenv("TOOLS_BURST", "7")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	Init()

	assert.Equal(t, "legacy-key", GeminiAPIKey)
	assert.Equal(t, "custom-image", ImageModel)
	assert.Equal(t, 0.5, ModelRPS)
	assert.Equal(t, 7, ToolsBurst)
	assert.Equal(t, int64(2<<20), MaxUploadBytes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, CORSOrigins)
}

func TestInitPrefersGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "primary")
	t.Setenv("API_KEY", "legacy-key")

	Init()

	assert.Equal(t, "primary", GeminiAPIKey)
}

func TestParseIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 5, parseInt("SOME_INT", 5))
}

func TestInitSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	Init()
	first := SessionSecret
	assert.Len(t, first, 64)

	Init()
	assert.NotEqual(t, first, SessionSecret)

	t.Setenv("SESSION_SECRET", "from-env")
	Init()
	assert.Equal(t, "from-env", SessionSecret)
}
