package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	AI       AIConfig
	Forecast ForecastConfig
	Archive  ArchiveConfig
	Drive    DriveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	ProfileTTLSeconds int
}

// AIConfig configures the OpenAI-compatible endpoint used for product
// recommendations and meal plan generation.
type AIConfig struct {
	APIKey         string
	BaseURL        string
	APIVersion     string
	Model          string
	AzureDeploy    bool
	TimeoutSeconds int
	MaxParallel    int
}

// ForecastConfig carries the urgency thresholds that the two shopping list
// entry points historically disagreed on. Both are explicit here.
type ForecastConfig struct {
	BasicThresholdDays    float64
	EnhancedThresholdDays float64
	BasicListLimit        int
	RecommendationLimit   int
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type DriveConfig struct {
	CredentialsJSON string
	FolderPath      string
	DownloadDir     string
	PollSeconds     int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8000")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "kitchen")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_PROFILE_TTL_SECONDS", 60)
		viper.SetDefault("AI_API_KEY", "")
		viper.SetDefault("AI_BASE_URL", "")
		viper.SetDefault("AI_API_VERSION", "2023-12-01-preview")
		viper.SetDefault("AI_MODEL", "gpt-4o")
		viper.SetDefault("AI_AZURE", false)
		viper.SetDefault("AI_TIMEOUT_SECONDS", 5)
		viper.SetDefault("AI_MAX_PARALLEL", 5)
		viper.SetDefault("FORECAST_BASIC_THRESHOLD_DAYS", 5)
		viper.SetDefault("FORECAST_ENHANCED_THRESHOLD_DAYS", 7)
		viper.SetDefault("FORECAST_BASIC_LIST_LIMIT", 5)
		viper.SetDefault("FORECAST_RECOMMENDATION_LIMIT", 5)
		viper.SetDefault("ARCHIVE_ENABLED", false)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "kitchen-archive")
		viper.SetDefault("ARCHIVE_USE_SSL", true)
		viper.SetDefault("DRIVE_CREDENTIALS_JSON", "")
		viper.SetDefault("DRIVE_FOLDER_PATH", "")
		viper.SetDefault("DRIVE_DOWNLOAD_DIR", "./data/ingest")
		viper.SetDefault("DRIVE_POLL_SECONDS", 300)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:           viper.GetBool("CACHE_ENABLED"),
				RedisURL:          viper.GetString("REDIS_URL"),
				RedisHost:         viper.GetString("REDIS_HOST"),
				RedisPort:         viper.GetString("REDIS_PORT"),
				RedisPassword:     viper.GetString("REDIS_PASSWORD"),
				RedisDB:           viper.GetInt("REDIS_DB"),
				ProfileTTLSeconds: viper.GetInt("CACHE_PROFILE_TTL_SECONDS"),
			},
			AI: AIConfig{
				APIKey:         viper.GetString("AI_API_KEY"),
				BaseURL:        viper.GetString("AI_BASE_URL"),
				APIVersion:     viper.GetString("AI_API_VERSION"),
				Model:          viper.GetString("AI_MODEL"),
				AzureDeploy:    viper.GetBool("AI_AZURE"),
				TimeoutSeconds: viper.GetInt("AI_TIMEOUT_SECONDS"),
				MaxParallel:    viper.GetInt("AI_MAX_PARALLEL"),
			},
			Forecast: ForecastConfig{
				BasicThresholdDays:    viper.GetFloat64("FORECAST_BASIC_THRESHOLD_DAYS"),
				EnhancedThresholdDays: viper.GetFloat64("FORECAST_ENHANCED_THRESHOLD_DAYS"),
				BasicListLimit:        viper.GetInt("FORECAST_BASIC_LIST_LIMIT"),
				RecommendationLimit:   viper.GetInt("FORECAST_RECOMMENDATION_LIMIT"),
			},
			Archive: ArchiveConfig{
				Enabled:   viper.GetBool("ARCHIVE_ENABLED"),
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
			Drive: DriveConfig{
				CredentialsJSON: viper.GetString("DRIVE_CREDENTIALS_JSON"),
				FolderPath:      viper.GetString("DRIVE_FOLDER_PATH"),
				DownloadDir:     viper.GetString("DRIVE_DOWNLOAD_DIR"),
				PollSeconds:     viper.GetInt("DRIVE_POLL_SECONDS"),
			},
		}
	})

	return instance
}
