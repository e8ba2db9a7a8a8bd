package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	if content == "" {
		return filepath.Join(tmpDir, "nonexistent.yaml")
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  read_host: replica
  user: testuser
  password: testpass
  dbname: testdb
auth:
  jwt_public_key: "public-key"
  api_keys:
    - key-1
    - key-2
ownership:
  auto_transfer_days: 14
  min_contribution_score_for_claim: 8
  contribution_weights:
    comment: 2
    major-edit: 12
cache:
  backend: redis
  ttl: 30s
  redis:
    addr: redis:6379
    db: 2
nats:
  url: "nats://localhost:4222"
posthog:
  api_key: phc_test
rate_limit:
  requests_per_minute: 30
  backend: redis
  redis:
    addr: redis:6379
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "replica", cfg.Database.ReadHost)
				assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
				assert.Equal(t, 14, cfg.Ownership.AutoTransferDays)
				assert.Equal(t, 14*24*time.Hour, cfg.Ownership.AutoTransferThreshold())
				assert.Equal(t, int64(8), cfg.Ownership.MinContributionScoreForClaim)
				assert.Equal(t, int64(2), cfg.Ownership.ContributionWeights["comment"])
				assert.Equal(t, int64(12), cfg.Ownership.ContributionWeights["major-edit"])
				assert.Equal(t, "redis", cfg.Cache.Backend)
				assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
				assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
				assert.Equal(t, 2, cfg.Cache.Redis.DB)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "phc_test", cfg.PostHog.APIKey)
				assert.Equal(t, 30, cfg.RateLimit.RequestsPerMinute)
				assert.Equal(t, "redis", cfg.RateLimit.Backend)
				assert.Equal(t, "redis:6379", cfg.RateLimit.Redis.Addr)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 7, cfg.Ownership.AutoTransferDays)
				assert.Equal(t, int64(5), cfg.Ownership.MinContributionScoreForClaim)
				assert.Equal(t, "memory", cfg.Cache.Backend)
				assert.Equal(t, 120*time.Second, cfg.Cache.TTL)
				assert.Equal(t, "OWNERSHIP_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, "ownership", cfg.NATS.SubjectPrefix)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Empty(t, cfg.NATS.URL)
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
				assert.Equal(t, 20, cfg.RateLimit.Burst)
				assert.Equal(t, "memory", cfg.RateLimit.Backend)
				assert.True(t, cfg.RateLimit.EnableLocalFallback)
			},
		},
		{
			name:       "missing config file",
			configFile: "",
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, 7, cfg.Ownership.AutoTransferDays)
			},
		},
		{
			name: "negative auto transfer days",
			configFile: `
ownership:
  auto_transfer_days: -1
`,
			expectError: true,
		},
		{
			name: "negative contribution weight",
			configFile: `
ownership:
  contribution_weights:
    comment: -3
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfigFile(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadAutoTransferConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadAutoTransferConfig(writeConfigFile(t, `
database:
  host: localhost
  dbname: testdb
`), t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, time.Hour, cfg.AutoTransfer.Interval)
		assert.Equal(t, 500, cfg.AutoTransfer.BatchSize)
		assert.Equal(t, uint64(3), cfg.AutoTransfer.MaxRetries)
		assert.Equal(t, 10, cfg.AutoTransfer.Worker.WorkerPoolSize)
		assert.Equal(t, 100, cfg.AutoTransfer.Worker.WorkerQueueSize)
		assert.Equal(t, 5, cfg.Database.MaxOpenConns)
		assert.Equal(t, "none", cfg.Cache.Backend)
		assert.Equal(t, 7, cfg.Ownership.AutoTransferDays)
	})

	t.Run("database host is required", func(t *testing.T) {
		cfg, err := LoadAutoTransferConfig(writeConfigFile(t, `
database:
  dbname: testdb
`), t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("database name is required", func(t *testing.T) {
		cfg, err := LoadAutoTransferConfig(writeConfigFile(t, `
database:
  host: localhost
`), t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestLoadWorkerCoreConfig(t *testing.T) {
	cfg, err := LoadWorkerCoreConfig(writeConfigFile(t, `
temporal:
  host_port: temporal:7233
  task_queue: custom-queue
auto_transfer:
  cron_schedule: "*/15 * * * *"
`), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
	assert.Equal(t, "default", cfg.Temporal.Namespace)
	assert.Equal(t, "custom-queue", cfg.Temporal.TaskQueue)
	assert.Equal(t, 50, cfg.Temporal.MaxConcurrentActivityExecutionSize)
	assert.Equal(t, "*/15 * * * *", cfg.AutoTransfer.CronSchedule)
}

func TestLoadCLIConfig(t *testing.T) {
	cfg, err := LoadCLIConfig(writeConfigFile(t, `
database:
  host: localhost
  dbname: testdb
`), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Database.MaxOpenConns)
	assert.Equal(t, "none", cfg.Cache.Backend)
	assert.Equal(t, "ownershipctl", cfg.NATS.ConnectionName)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
		readDSN  string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				ReadHost: "replica",
				ReadPort: 6432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
			readDSN:  "host=replica port=6432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "read port falls back to port",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				ReadHost: "replica",
				User:     "user",
				Password: "p@ssw0rd!",
				DBName:   "db",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=user password=p@ssw0rd! dbname=db sslmode=disable",
			readDSN:  "host=replica port=5432 user=user password=p@ssw0rd! dbname=db sslmode=disable",
		},
		{
			name: "no replica",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "user",
				Password: "pass",
				DBName:   "db",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=user password=pass dbname=db sslmode=disable",
			readDSN:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
			assert.Equal(t, tt.readDSN, tt.config.ReadDSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// Register cleanup for every variable the .env file sets
	for _, key := range []string{
		"FF_OWNERSHIP_DEBUG",
		"FF_OWNERSHIP_DATABASE_HOST",
		"FF_OWNERSHIP_DATABASE_PORT",
		"FF_OWNERSHIP_DATABASE_DBNAME",
		"FF_OWNERSHIP_CACHE_TTL",
		"AUTO_TRANSFER_DAYS",
		"MIN_CONTRIBUTION_SCORE_FOR_CLAIM",
	} {
		t.Setenv(key, "")
	}

	envContent := `FF_OWNERSHIP_DEBUG=true
FF_OWNERSHIP_DATABASE_HOST=env-host
FF_OWNERSHIP_DATABASE_PORT=6543
FF_OWNERSHIP_DATABASE_DBNAME=env-db
FF_OWNERSHIP_CACHE_TTL=45s
AUTO_TRANSFER_DAYS=3
MIN_CONTRIBUTION_SCORE_FOR_CLAIM=9
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
ownership:
  auto_transfer_days: 10
`
	require.NoError(t, os.WriteFile(configPath, []byte(configFile), 0600))

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Values from the .env file override the config file
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, 45*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 3, cfg.Ownership.AutoTransferDays)
	assert.Equal(t, int64(9), cfg.Ownership.MinContributionScoreForClaim)
}
