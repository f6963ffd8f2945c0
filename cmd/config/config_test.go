package config_test

import (
	"testing"
	"time"

	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := config.Load()
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, config.DriverMongo, cfg.Database.Driver)
	require.Equal(t, config.MediaLocal, cfg.Media.Driver)
	require.Equal(t, "uploads/images", cfg.Media.UploadDir)
	require.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.NeedsMongo())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "p@ss")
	t.Setenv("DB_NAME", "immo")
	t.Setenv("CORS_ORIGIN", "https://a.example, https://b.example ,")
	t.Setenv("LOGIN_LOCKOUT", "5m")

	cfg := config.Load()
	require.Equal(t, "HS512", cfg.Auth.JWTAlgorithm)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWTExpiration)
	require.Equal(t, 5*time.Minute, cfg.Auth.LoginLockout)
	require.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "postgres://app:p%40ss@db:5432/immo?sslmode=disable", cfg.GetDSN())
	require.False(t, cfg.NeedsMongo())
	require.NoError(t, cfg.Validate())

	t.Setenv("DATABASE_URL", "postgres://override/db")
	require.Equal(t, "postgres://override/db", config.Load().GetDSN())
}

func TestGetDSN_MySQL(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: config.DriverMySQL, Host: "127.0.0.1", Port: 3306, User: "root", Password: "pw", Name: "immobilier",
	}}
	require.Equal(t, "root:pw@tcp(127.0.0.1:3306)/immobilier?parseTime=true&charset=utf8mb4&loc=UTC", cfg.GetDSN())
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Database: config.DatabaseConfig{Driver: config.DriverMySQL},
			Auth:     config.AuthConfig{JWTSecret: "s", JWTAlgorithm: "HS256", JWTExpiration: time.Hour},
			Media:    config.MediaConfig{Driver: config.MediaLocal, ChunkSize: 1024},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{name: "missing secret", mutate: func(c *config.Config) { c.Auth.JWTSecret = "" }},
		{name: "asymmetric algorithm", mutate: func(c *config.Config) { c.Auth.JWTAlgorithm = "RS256" }},
		{name: "non positive expiry", mutate: func(c *config.Config) { c.Auth.JWTExpiration = 0 }},
		{name: "unknown db driver", mutate: func(c *config.Config) { c.Database.Driver = "sqlite" }},
		{name: "unknown media driver", mutate: func(c *config.Config) { c.Media.Driver = "s3" }},
		{name: "cloudinary without credentials", mutate: func(c *config.Config) { c.Media.Driver = config.MediaCloudinary }},
		{name: "zero chunk size", mutate: func(c *config.Config) { c.Media.ChunkSize = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			require.Error(t, c.Validate())
		})
	}
}
