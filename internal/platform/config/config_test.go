package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, SettlementOpen, cfg.Registry.SettlementMode)
	assert.Equal(t, uint64(10000), cfg.Registry.MaxContributions)
	assert.Equal(t, int64(500), cfg.Registry.SubmissionFee)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.RequireAuthorityCallerForParams)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("REGISTRY_ADDR", ":9090")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("STORE_POSTGRES_URL", "postgres://registry@localhost/registry?sslmode=disable")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REGISTRY_SETTLEMENT_MODE", "metered")
	t.Setenv("REQUIRE_AUTHORITY_CALLER_FOR_PARAMS", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, SettlementMetered, cfg.Registry.SettlementMode)
	assert.True(t, cfg.RequireAuthorityCallerForParams)
}

func TestValidate(t *testing.T) {
	valid := func() Server {
		return Server{
			Store:    StoreConfig{Backend: BackendMemory},
			JWT:      JWTConfig{SigningKey: "k"},
			Registry: RegistryConfig{SettlementMode: SettlementOpen},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Server)
		wantErr string
	}{
		{"valid memory", func(*Server) {}, ""},
		{"unknown backend", func(s *Server) { s.Store.Backend = "sqlite" }, "unknown store backend"},
		{"postgres without url", func(s *Server) { s.Store.Backend = BackendPostgres }, "STORE_POSTGRES_URL"},
		{"unknown settlement", func(s *Server) { s.Registry.SettlementMode = "free" }, "unknown settlement mode"},
		{"empty signing key", func(s *Server) { s.JWT.SigningKey = "" }, "JWT_SIGNING_KEY"},
		{"negative opening balance", func(s *Server) { s.Registry.OpeningBalance = -1 }, "OPENING_BALANCE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
