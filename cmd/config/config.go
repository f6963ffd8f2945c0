package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	MediaLocal      = "local"
	MediaGridFS     = "gridfs"
	MediaCloudinary = "cloudinary"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Media       MediaConfig
	Email       EmailConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MongoConfig struct {
	URL      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret        string
	JWTAlgorithm     string
	JWTExpiration    time.Duration
	LoginMaxAttempts int
	LoginLockout     time.Duration
}

type MediaConfig struct {
	Driver     string
	UploadDir  string
	ChunkSize  int
	Cloudinary CloudinaryConfig
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type EmailConfig struct {
	APIKey     string
	Sender     string
	SenderName string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8000"),
			ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxUploadBytes:  int64(getInt("MAX_UPLOAD_BYTES", 32<<20)),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getEnv("DB_HOST", "127.0.0.1"),
			Port:            getInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            getEnv("DB_NAME", "immobilier"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Mongo: MongoConfig{
			URL:      getEnv("MONGO_URL", "mongodb://127.0.0.1:27017"),
			Database: getEnv("MONGO_DATABASE", "immobilier"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			JWTAlgorithm:     strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
			JWTExpiration:    time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 1440)) * time.Minute,
			LoginMaxAttempts: getInt("LOGIN_MAX_ATTEMPTS", 5),
			LoginLockout:     getDuration("LOGIN_LOCKOUT", 15*time.Minute),
		},
		Media: MediaConfig{
			Driver:    strings.ToLower(getEnv("MEDIA_DRIVER", MediaLocal)),
			UploadDir: getEnv("UPLOAD_DIR", "uploads/images"),
			ChunkSize: getInt("UPLOAD_CHUNK_SIZE", 1024*1024),
			Cloudinary: CloudinaryConfig{
				CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
				APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
				APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
				Folder:    getEnv("CLOUDINARY_FOLDER", "immobilier"),
			},
		},
		Email: EmailConfig{
			APIKey:     os.Getenv("EMAIL_API_KEY"),
			Sender:     getEnv("EMAIL_SENDER", "no-reply@immobilier.local"),
			SenderName: getEnv("EMAIL_SENDER_NAME", "Immobilier"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ORIGIN", []string{"*"}),
			AllowedMethods: getList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getList("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type"}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getInt("RATE_LIMIT_RPM", 600),
		},
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Auth.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM %q is not supported", c.Auth.JWTAlgorithm)
	}
	if c.Auth.JWTExpiration <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver)
	}
	switch c.Media.Driver {
	case MediaLocal:
	case MediaGridFS:
		if c.Database.Driver != DriverMongo && c.Mongo.URL == "" {
			return fmt.Errorf("MEDIA_DRIVER=gridfs requires MONGO_URL")
		}
	case MediaCloudinary:
		cl := c.Media.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			return fmt.Errorf("MEDIA_DRIVER=cloudinary requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	default:
		return fmt.Errorf("MEDIA_DRIVER %q is not supported", c.Media.Driver)
	}
	if c.Media.ChunkSize <= 0 {
		return fmt.Errorf("UPLOAD_CHUNK_SIZE must be positive")
	}
	return nil
}

// NeedsMongo reports whether a mongo client must be opened.
func (c *Config) NeedsMongo() bool {
	return c.Database.Driver == DriverMongo || c.Media.Driver == MediaGridFS
}

// GetDSN returns the connection string for the SQL drivers. DATABASE_URL wins when set.
func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	db := c.Database
	switch db.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(db.User, db.Password),
			Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
			Path:     db.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			db.User, db.Password, db.Host, db.Port, db.Name)
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		parts := strings.Split(v, ",")
		var cleaned []string
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			return cleaned
		}
	}
	return def
}
