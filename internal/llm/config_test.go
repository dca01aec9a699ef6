package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("anthropic requires key", func(t *testing.T) {
		cfg := DefaultConfig()
		require.Error(t, cfg.Validate())

		cfg.Anthropic.APIKey = "sk-test"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("mock needs no key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "mock"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "llama-at-home"
		assert.Error(t, cfg.Validate())
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GENMENTOR_LLM_PROVIDER", "openai")
	t.Setenv("GENMENTOR_OPENAI_API_KEY", "sk-env")
	t.Setenv("GENMENTOR_OPENAI_MODEL", "gpt-test")
	t.Setenv("GENMENTOR_OPENAI_BASE_URL", "https://router.example/v1")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-test", cfg.OpenAI.Model)
	assert.Equal(t, "https://router.example/v1", cfg.OpenAI.BaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfigPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-anthropic")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-openai", cfg.OpenAI.APIKey)
}

func TestDiscoverConfigNoneFound(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, ok := DiscoverConfig()
	assert.False(t, ok)
}
