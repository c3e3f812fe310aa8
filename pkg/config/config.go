package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Board    BoardConfig
	Exports  ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BoardConfig tunes the classroom status engine and its tick loop.
type BoardConfig struct {
	TickInterval      time.Duration
	EcoDelay          time.Duration
	PreBellWindow     time.Duration
	DismissalDuration time.Duration
	HalfDayCutover    string
	RecessSlotID      string
	CutoverSlotID     string
	CleaningLabel     string
	DismissalLabel    string
	SnapshotCacheTTL  time.Duration
	CacheEnabled      bool
}

// ExportsConfig governs timetable export output.
type ExportsConfig struct {
	Enabled bool
	Title   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Board = BoardConfig{
		TickInterval:      parseDuration(v.GetString("BOARD_TICK_INTERVAL"), time.Second),
		EcoDelay:          parseDuration(v.GetString("BOARD_ECO_DELAY"), 3*time.Minute),
		PreBellWindow:     parseDuration(v.GetString("BOARD_PREBELL_WINDOW"), time.Minute),
		DismissalDuration: parseDuration(v.GetString("BOARD_DISMISSAL_DURATION"), 20*time.Minute),
		HalfDayCutover:    v.GetString("BOARD_HALFDAY_CUTOVER"),
		RecessSlotID:      v.GetString("BOARD_RECESS_SLOT_ID"),
		CutoverSlotID:     v.GetString("BOARD_CUTOVER_SLOT_ID"),
		CleaningLabel:     v.GetString("BOARD_CLEANING_LABEL"),
		DismissalLabel:    v.GetString("BOARD_DISMISSAL_LABEL"),
		SnapshotCacheTTL:  parseDuration(v.GetString("BOARD_SNAPSHOT_CACHE_TTL"), 5*time.Second),
		CacheEnabled:      v.GetBool("BOARD_CACHE_ENABLED"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
		Title:   v.GetString("EXPORTS_TITLE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "classboard")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "classboard-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("BOARD_TICK_INTERVAL", "1s")
	v.SetDefault("BOARD_ECO_DELAY", "3m")
	v.SetDefault("BOARD_PREBELL_WINDOW", "1m")
	v.SetDefault("BOARD_DISMISSAL_DURATION", "20m")
	v.SetDefault("BOARD_HALFDAY_CUTOVER", "13:20")
	v.SetDefault("BOARD_RECESS_SLOT_ID", "recess")
	v.SetDefault("BOARD_CUTOVER_SLOT_ID", "p5")
	v.SetDefault("BOARD_CLEANING_LABEL", "Cleaning Time")
	v.SetDefault("BOARD_DISMISSAL_LABEL", "Dismissal")
	v.SetDefault("BOARD_SNAPSHOT_CACHE_TTL", "5s")
	v.SetDefault("BOARD_CACHE_ENABLED", false)

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("EXPORTS_TITLE", "Day Timetable")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
