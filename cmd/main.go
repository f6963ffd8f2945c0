package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authapp "github.com/muhammadheryan/property-listing/application/auth"
	listingapp "github.com/muhammadheryan/property-listing/application/listing"
	tokenapp "github.com/muhammadheryan/property-listing/application/token"
	userapp "github.com/muhammadheryan/property-listing/application/user"
	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/muhammadheryan/property-listing/cmd/database"
	mongoclient "github.com/muhammadheryan/property-listing/cmd/mongo"
	redisclient "github.com/muhammadheryan/property-listing/cmd/redis"
	_ "github.com/muhammadheryan/property-listing/docs"
	listingRepo "github.com/muhammadheryan/property-listing/repository/listing"
	redisRepo "github.com/muhammadheryan/property-listing/repository/redis"
	userRepo "github.com/muhammadheryan/property-listing/repository/user"
	"github.com/muhammadheryan/property-listing/thirdparty/email"
	"github.com/muhammadheryan/property-listing/thirdparty/media"
	"github.com/muhammadheryan/property-listing/transport"
	"github.com/muhammadheryan/property-listing/utils/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// @title IMMOBILIER API
// @version 1.0
// @description Property listing API for real-estate agencies
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	logger.Info("Starting server",
		zap.String("env", cfg.Environment),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("media_driver", cfg.Media.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthChecks := map[string]transport.HealthCheck{}

	// Connect to mongo when it backs the stores or the media bucket
	var mongoDB *mongo.Database
	if cfg.NeedsMongo() {
		client, db, err := mongoclient.New(ctx, cfg)
		if err != nil {
			logger.Fatal("err connect mongo", zap.Error(err))
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		mongoDB = db
		healthChecks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	}

	// Initialize repositories
	var (
		UserRepo    userRepo.UserRepository
		ListingRepo listingRepo.ListingRepository
	)
	switch cfg.Database.Driver {
	case config.DriverMongo:
		UserRepo = userRepo.NewMongoUserRepository(mongoDB)
		ListingRepo = listingRepo.NewMongoListingRepository(mongoDB)
	default:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			logger.Fatal("err connect db", zap.Error(err))
		}
		defer func() {
			_ = db.Close()
		}()
		healthChecks["database"] = db.PingContext
		UserRepo = userRepo.NewUserRepository(db)
		ListingRepo = listingRepo.NewListingRepository(db)
	}

	// Initialize Redis client, nil when REDIS_HOST is unset
	redisClient, err := redisclient.New(ctx, cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	RedisRepo := redisRepo.NewRepository(redisClient)

	// Initialize media storage
	uploader, err := newUploader(cfg, mongoDB)
	if err != nil {
		logger.Fatal("err init media", zap.Error(err))
	}
	if local, ok := uploader.(*media.LocalUploader); ok {
		healthChecks["uploads"] = local.Check
	}
	mediaServer, _ := uploader.(media.Server)

	// Initialize application layers
	TokenApp := tokenapp.NewTokenApp(cfg)
	AuthApp := authapp.NewAuthApp(cfg, UserRepo, RedisRepo, TokenApp)
	UserApp := userapp.NewUserApp(UserRepo, email.NewNotifier(cfg))
	ListingApp := listingapp.NewListingApp(ListingRepo, UserRepo, uploader)

	httpTransport := transport.NewTransport(transport.Options{
		AuthApp:      AuthApp,
		UserApp:      UserApp,
		ListingApp:   ListingApp,
		MediaServer:  mediaServer,
		HealthChecks: healthChecks,
		CORS:         cfg.CORS,
		RateLimit:    transport.NewRateLimiter(cfg.RateLimit.RequestsPerMinute),
		MaxUpload:    cfg.Server.MaxUploadBytes,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("failed server", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err shutdown server", zap.Error(err))
	}
}

func newUploader(cfg *config.Config, mongoDB *mongo.Database) (media.Uploader, error) {
	switch cfg.Media.Driver {
	case config.MediaGridFS:
		return media.NewGridFSUploader(mongoDB, cfg.Media.ChunkSize)
	case config.MediaCloudinary:
		cl := cfg.Media.Cloudinary
		return media.NewCloudinaryUploader(cl.CloudName, cl.APIKey, cl.APISecret, cl.Folder)
	default:
		return media.NewLocalUploader(cfg.Media.UploadDir, cfg.Media.ChunkSize)
	}
}
