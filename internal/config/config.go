package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "FF_OWNERSHIP"

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration. Publishing is disabled when URL is empty.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	TaskQueue                          string  `mapstructure:"task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// CORSAllowedOrigins lists the browser origins allowed to call the API, empty allows any
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// OwnershipConfig holds the claim arbitration policy
type OwnershipConfig struct {
	// AutoTransferDays is how long an asset stays unclaimed before auto-transfer applies
	AutoTransferDays int `mapstructure:"auto_transfer_days"`
	// MinContributionScoreForClaim gates claims against owned assets
	MinContributionScoreForClaim int64 `mapstructure:"min_contribution_score_for_claim"`
	// ContributionWeights overrides default weights per contribution type
	ContributionWeights map[string]int64 `mapstructure:"contribution_weights"`
}

// AutoTransferThreshold returns the unclaimed age after which auto-transfer applies
func (c OwnershipConfig) AutoTransferThreshold() time.Duration {
	return time.Duration(c.AutoTransferDays) * 24 * time.Hour
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig holds read cache configuration.
// Backend is one of "memory", "redis" or "none".
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	MaxCost int64         `mapstructure:"max_cost"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RateLimitConfig throttles API mutations per caller.
// Backend is "memory" for a single replica or "redis" to share budgets across replicas.
type RateLimitConfig struct {
	Enabled             bool        `mapstructure:"enabled"`
	RequestsPerMinute   int         `mapstructure:"requests_per_minute"`
	Burst               int         `mapstructure:"burst"`
	Backend             string      `mapstructure:"backend"`
	EnableLocalFallback bool        `mapstructure:"enable_local_fallback"`
	Redis               RedisConfig `mapstructure:"redis"`
}

// PostHogConfig holds product analytics configuration. Capturing is disabled when APIKey is empty.
type PostHogConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// AutoTransferConfig holds configuration for the auto-transfer drivers
type AutoTransferConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	MaxRetries   uint64        `mapstructure:"max_retries"`
	CronSchedule string        `mapstructure:"cron_schedule"`
	Worker       WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Ownership  OwnershipConfig `mapstructure:"ownership"`
	Cache      CacheConfig     `mapstructure:"cache"`
	NATS       NATSConfig      `mapstructure:"nats"`
	PostHog    PostHogConfig   `mapstructure:"posthog"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// AutoTransferSweeperConfig holds configuration for the auto-transfer sweeper program
type AutoTransferSweeperConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Ownership    OwnershipConfig    `mapstructure:"ownership"`
	Cache        CacheConfig        `mapstructure:"cache"`
	NATS         NATSConfig         `mapstructure:"nats"`
	PostHog      PostHogConfig      `mapstructure:"posthog"`
	AutoTransfer AutoTransferConfig `mapstructure:"auto_transfer"`
}

// WorkerCoreConfig holds configuration for worker-core
type WorkerCoreConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Temporal     TemporalConfig     `mapstructure:"temporal"`
	Ownership    OwnershipConfig    `mapstructure:"ownership"`
	Cache        CacheConfig        `mapstructure:"cache"`
	NATS         NATSConfig         `mapstructure:"nats"`
	PostHog      PostHogConfig      `mapstructure:"posthog"`
	AutoTransfer AutoTransferConfig `mapstructure:"auto_transfer"`
}

// CLIConfig holds configuration for the ownershipctl admin tool
type CLIConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Ownership    OwnershipConfig    `mapstructure:"ownership"`
	Cache        CacheConfig        `mapstructure:"cache"`
	NATS         NATSConfig         `mapstructure:"nats"`
	AutoTransfer AutoTransferConfig `mapstructure:"auto_transfer"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setOwnershipDefaults(v)
	setCacheDefaults(v, "memory")
	setNATSDefaults(v, "ownership-api")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.redis.addr", "localhost:6379")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateOwnership(cfg.Ownership); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAutoTransferConfig loads configuration for the auto-transfer sweeper program
func LoadAutoTransferConfig(configFile string, envPath string) (*AutoTransferSweeperConfig, error) {
	v := configureViper("auto-transfer", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	setOwnershipDefaults(v)
	setCacheDefaults(v, "none")
	setNATSDefaults(v, "ownership-auto-transfer")
	setAutoTransferDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg AutoTransferSweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if err := validateOwnership(cfg.Ownership); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWorkerCoreConfig loads configuration for worker-core
func LoadWorkerCoreConfig(configFile string, envPath string) (*WorkerCoreConfig, error) {
	v := configureViper("worker-core", configFile, envPath)

	setDatabaseDefaults(v)
	setOwnershipDefaults(v)
	setCacheDefaults(v, "none")
	setNATSDefaults(v, "ownership-worker-core")
	setAutoTransferDefaults(v)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "ownership")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 50)
	v.SetDefault("temporal.worker_activities_per_second", 50)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 10)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg WorkerCoreConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateOwnership(cfg.Ownership); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadCLIConfig loads configuration for the ownershipctl admin tool
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("ownershipctl", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 2)
	v.SetDefault("database.max_idle_conns", 1)
	setOwnershipDefaults(v)
	setCacheDefaults(v, "none")
	setNATSDefaults(v, "ownershipctl")
	setAutoTransferDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if err := validateOwnership(cfg.Ownership); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setOwnershipDefaults(v *viper.Viper) {
	v.SetDefault("ownership.auto_transfer_days", 7)
	v.SetDefault("ownership.min_contribution_score_for_claim", 5)
}

func setCacheDefaults(v *viper.Viper, backend string) {
	v.SetDefault("cache.backend", backend)
	v.SetDefault("cache.ttl", "120s")
	v.SetDefault("cache.max_cost", 10000)
	v.SetDefault("cache.redis.addr", "localhost:6379")
}

func setNATSDefaults(v *viper.Viper, connectionName string) {
	v.SetDefault("nats.stream_name", "OWNERSHIP_EVENTS")
	v.SetDefault("nats.subject_prefix", "ownership")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", connectionName)
}

func setAutoTransferDefaults(v *viper.Viper) {
	v.SetDefault("auto_transfer.interval", "1h")
	v.SetDefault("auto_transfer.batch_size", 500)
	v.SetDefault("auto_transfer.max_retries", 3)
	v.SetDefault("auto_transfer.cron_schedule", "0 * * * *")
	v.SetDefault("auto_transfer.worker.pool_size", 10)
	v.SetDefault("auto_transfer.worker.queue_size", 100)
}

// readConfig reads the config file, falling back to environment variables when none exists
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func validateDatabase(cfg DatabaseConfig) error {
	if cfg.Host == "" {
		return errors.New("database.host is required")
	}
	if cfg.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func validateOwnership(cfg OwnershipConfig) error {
	if cfg.AutoTransferDays < 0 {
		return fmt.Errorf("ownership.auto_transfer_days must not be negative: %d", cfg.AutoTransferDays)
	}
	if cfg.MinContributionScoreForClaim < 0 {
		return fmt.Errorf("ownership.min_contribution_score_for_claim must not be negative: %d", cfg.MinContributionScoreForClaim)
	}
	for contributionType, weight := range cfg.ContributionWeights {
		if weight < 0 {
			return fmt.Errorf("ownership.contribution_weights.%s must not be negative: %d", contributionType, weight)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search order: current directory, cmd/<service>/, config/
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Cache
		"cache.backend",
		"cache.ttl",
		"cache.max_cost",
		"cache.redis.addr",
		"cache.redis.password",
		"cache.redis.db",
		// Rate limiting
		"rate_limit.enabled",
		"rate_limit.requests_per_minute",
		"rate_limit.burst",
		"rate_limit.backend",
		"rate_limit.enable_local_fallback",
		"rate_limit.redis.addr",
		"rate_limit.redis.password",
		"rate_limit.redis.db",
		// PostHog
		"posthog.api_key",
		"posthog.endpoint",
		// Auto-transfer drivers
		"auto_transfer.interval",
		"auto_transfer.batch_size",
		"auto_transfer.max_retries",
		"auto_transfer.cron_schedule",
		"auto_transfer.worker.pool_size",
		"auto_transfer.worker.queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}

	// Policy knobs also honour their unprefixed names
	_ = v.BindEnv("ownership.auto_transfer_days", envPrefix+"_OWNERSHIP_AUTO_TRANSFER_DAYS", "AUTO_TRANSFER_DAYS")
	_ = v.BindEnv("ownership.min_contribution_score_for_claim", envPrefix+"_OWNERSHIP_MIN_CONTRIBUTION_SCORE_FOR_CLAIM", "MIN_CONTRIBUTION_SCORE_FOR_CLAIM")
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string, empty when no replica is configured.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" {
		return ""
	}

	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
