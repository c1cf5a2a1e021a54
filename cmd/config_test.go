package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "pagecheck", configBaseName)
	assert.Equal(t, "pagecheck.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "base_url", baseURLKey)
	assert.Equal(t, "request.timeout", timeoutKey)
	assert.Equal(t, "https://quick-remove-item.preview.emergentAgent.com/api", defaultBaseURL)
	assert.Equal(t, 30*time.Second, defaultTimeout)
	assert.Equal(t, 10*time.Second, defaultSlowThreshold)
	assert.Equal(t, "PAGECHECK", envPrefix)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, defaultBaseURL, viper.GetString(baseURLKey))
	assert.Equal(t, []string{"solar", "panel", "battery"}, viper.GetStringSlice(searchTermsKey))
	assert.Equal(t, "json", viper.GetString(reportFormatKey))
	assert.False(t, viper.GetBool(failOnFailureKey))
}

func TestDurationSetting(t *testing.T) {
	const key = "test.duration_setting"
	t.Cleanup(func() { viper.Set(key, nil) })

	tests := []struct {
		name  string
		value any
		want  time.Duration
	}{
		{"empty uses fallback", "", 7 * time.Second},
		{"bare seconds", "45", 45 * time.Second},
		{"fractional seconds", "1.5", 1500 * time.Millisecond},
		{"go duration", "250ms", 250 * time.Millisecond},
		{"invalid uses fallback", "soon", 7 * time.Second},
		{"negative uses fallback", "-3", 7 * time.Second},
		{"zero uses fallback", "0s", 7 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set(key, tt.value)
			assert.Equal(t, tt.want, durationSetting(key, 7*time.Second))
		})
	}
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}
