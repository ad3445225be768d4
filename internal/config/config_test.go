package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "POLICY_SOURCE", "POLICY_FILE", "POLICY_NAME", "DB_CONN", "JWT_SECRET", "CBR_URL", "RATE_REFRESH_SCHEDULE", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "8080")
	t.Setenv("POLICY_NAME", "default")
	t.Setenv("CORS_ORIGINS", "*")
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, PolicySourceDefault, cfg.PolicySource)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestNewConfig_PolicyFileImpliesFileSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLICY_FILE", "/etc/finhealth/policy.yaml")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, PolicySourceFile, cfg.PolicySource)
}

func TestNewConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"file source without file", map[string]string{"POLICY_SOURCE": "file"}},
		{"postgres without dsn", map[string]string{"POLICY_SOURCE": "postgres"}},
		{"unknown source", map[string]string{"POLICY_SOURCE": "etcd"}},
		{"empty port", map[string]string{"PORT": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}
