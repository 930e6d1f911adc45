package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"exam-worksheet/internal/domain"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Storage    StorageConfig
	Worksheet  WorksheetConfig
	Difficulty DifficultyConfig
	Chapters   ChaptersConfig
	Cache      CacheConfig
	PDF        PDFConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// AuthConfig holds the Supabase JWT verification settings.
type AuthConfig struct {
	JWTSecret string
	Audience  string
}

// StorageConfig points at the public bucket serving problem and answer images.
type StorageConfig struct {
	BaseURL string
	Timeout time.Duration
}

type WorksheetConfig struct {
	// BatchSize bounds the number of IDs per store query during re-hydration
	BatchSize       int
	DefaultPageSize int
	MaxPageSize     int
}

type DifficultyConfig struct {
	Bands []domain.DifficultyBand
}

// ChapterPath is one configured root-to-leaf row of a default chapter tree
type ChapterPath struct {
	IDs    []string `mapstructure:"ids"`
	Labels []string `mapstructure:"labels"`
}

type ChaptersConfig struct {
	// Defaults are used for subjects with no rows in the tag table
	Defaults map[string][]ChapterPath
	// SubjectPrefixes maps a subject to the redundant prefix its tag rows may carry
	SubjectPrefixes map[string]string
}

type CacheConfig struct {
	ChapterTreeTTL time.Duration
}

type PDFConfig struct {
	DPI      float64
	FontPath string
	FontSize float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.body_limit", 10*1024*1024)
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("auth.audience", "authenticated")
	v.SetDefault("storage.timeout", 15)
	v.SetDefault("worksheet.batch_size", 100)
	v.SetDefault("worksheet.default_page_size", 20)
	v.SetDefault("worksheet.max_page_size", 100)
	v.SetDefault("cache.chapter_tree_ttl", 600)
	v.SetDefault("pdf.dpi", 150)
	v.SetDefault("pdf.font_size", 11)
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// env-only deployments run without a file
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			Audience:  v.GetString("auth.audience"),
		},
		Storage: StorageConfig{
			BaseURL: v.GetString("storage.base_url"),
			Timeout: time.Duration(v.GetInt("storage.timeout")) * time.Second,
		},
		Worksheet: WorksheetConfig{
			BatchSize:       v.GetInt("worksheet.batch_size"),
			DefaultPageSize: v.GetInt("worksheet.default_page_size"),
			MaxPageSize:     v.GetInt("worksheet.max_page_size"),
		},
		Cache: CacheConfig{
			ChapterTreeTTL: time.Duration(v.GetInt("cache.chapter_tree_ttl")) * time.Second,
		},
		PDF: PDFConfig{
			DPI:      v.GetFloat64("pdf.dpi"),
			FontPath: v.GetString("pdf.font_path"),
			FontSize: v.GetFloat64("pdf.font_size"),
		},
	}

	if err := v.UnmarshalKey("difficulty.bands", &config.Difficulty.Bands); err != nil {
		return nil, fmt.Errorf("invalid difficulty.bands: %w", err)
	}
	if err := v.UnmarshalKey("chapters.defaults", &config.Chapters.Defaults); err != nil {
		return nil, fmt.Errorf("invalid chapters.defaults: %w", err)
	}
	config.Chapters.SubjectPrefixes = v.GetStringMapString("chapters.subject_prefixes")

	// Override with environment variables if set
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("SUPABASE_JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if baseURL := os.Getenv("STORAGE_BASE_URL"); baseURL != "" {
		config.Storage.BaseURL = baseURL
	}

	if config.Worksheet.BatchSize <= 0 {
		return nil, fmt.Errorf("worksheet.batch_size must be positive, got %d", config.Worksheet.BatchSize)
	}

	return config, nil
}

// GetDSN returns the Postgres connection URL
func (c *Config) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DB.SSLMode),
	}
	return u.String()
}

// DefaultChapterRows converts the configured default tree of a subject into tag rows
func (c ChaptersConfig) DefaultChapterRows(subject string) []domain.TagPathRow {
	paths := c.Defaults[subject]
	rows := make([]domain.TagPathRow, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, domain.TagPathRow{Subject: subject, IDs: p.IDs, Labels: p.Labels})
	}
	return rows
}
