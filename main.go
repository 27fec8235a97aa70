package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foliocms/foliocms/handlers"
	"github.com/foliocms/foliocms/internal/config"
	"github.com/foliocms/foliocms/internal/database"
	"github.com/foliocms/foliocms/internal/oidc"
	"github.com/foliocms/foliocms/internal/portfolio/repository"
	"github.com/foliocms/foliocms/internal/portfolio/service"
	"github.com/foliocms/foliocms/internal/render"
	"github.com/foliocms/foliocms/internal/sessions"
	"github.com/foliocms/foliocms/internal/storage"
	"github.com/foliocms/foliocms/pkg/logger"
	"github.com/foliocms/foliocms/pkg/metrics"
	"github.com/foliocms/foliocms/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: oidc=%v mongo=%v redis=%v", cfg.OIDC.IssuerURL != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsCfg))

	ctx := context.Background()

	// Connect to Redis early so the revocation list and rate limiter can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			sessions.SetRevocationClient(redisClient)
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// OIDC verifier for login; insecure fallback only under explicit opt-in
	var verifier handlers.IdentityVerifier
	if cfg.OIDC.IssuerURL != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil && strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warn("enabling insecure identity verifier (integration mode)")
		verifier = oidc.NewInsecureVerifier()
	}

	// MongoDB with retry/backoff to tolerate startup races
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	// Portfolio store: Mongo in deployments, in-memory for local runs without one
	var portfolioRepo repository.Repository
	if mongoClient != nil {
		portfolioRepo = repository.NewMongoRepository(mongoClient.Database(cfg.MongoDB.Database).Collection("portfolio"))
	} else {
		logger.Warn("no MongoDB available, portfolio content will not survive restarts")
		portfolioRepo = repository.NewMemoryRepository()
	}
	portfolioSvc := service.NewService(portfolioRepo)

	// Session store: prefer Redis, fall back to Mongo
	var sessionRepo sessions.Repository
	switch {
	case redisClient != nil:
		sessionRepo = sessions.NewRedisRepository(redisClient, "session:")
		logger.Infof("using Redis for session storage")
	case mongoClient != nil:
		sessionRepo = sessions.NewMongoRepository(mongoClient.Database(cfg.MongoDB.Database).Collection("sessions"))
		logger.Infof("using MongoDB for session storage")
	}
	var sessionsSvc *sessions.Service
	if sessionRepo != nil {
		sessionsSvc = sessions.NewService(sessionRepo, []byte(cfg.Session.Secret), cfg.Session.TTL)
	}

	// Object storage for image uploads (optional)
	var uploader handlers.Uploader
	if minioCfg := storage.LoadMinIOConfig(); minioCfg.Endpoint != "" {
		store, err := storage.NewMinIOStorage(minioCfg)
		if err != nil {
			logger.Warnf("failed to initialize MinIO storage: %v", err)
		} else {
			uploader = store
			logger.Infof("connected to MinIO: %s bucket=%s", minioCfg.Endpoint, minioCfg.Bucket)
		}
	}

	renderer, err := render.NewRenderer(portfolioSvc, cfg.Render.Revalidate)
	if err != nil {
		logger.Fatalf("failed to initialize renderer: %v", err)
	}
	defer renderer.Close()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["storage"] = mongoClient != nil
		if mongoClient == nil {
			ready = false
		}
		deps["sessions"] = sessionsSvc != nil
		if sessionsSvc == nil {
			ready = false
		}
		if cfg.OIDC.IssuerURL != "" {
			deps["oidc"] = verifier != nil
			if verifier == nil {
				ready = false
			}
		} else {
			deps["oidc"] = true
		}
		deps["uploads"] = uploader != nil

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	root := r.Group("/")
	if sessionsSvc != nil && verifier != nil {
		authHandler := handlers.NewAuthHandler(cfg, sessionsSvc, verifier)
		authHandler.Register(root)
	} else {
		logger.Warnf("auth routes not registered: sessions=%v verifier=%v", sessionsSvc != nil, verifier != nil)
	}

	gate := &middleware.SessionGate{CookieName: config.SessionCookieName, Secure: cfg.Session.CookieSecure}
	if sessionsSvc != nil {
		gate.Verifier = sessionsSvc
	}
	var requireSession gin.HandlerFunc
	if sessionsSvc != nil {
		requireSession = gate.RequireAPI()
	} else {
		// without a session service every gated route is unavailable
		requireSession = func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "sessions are not configured"})
		}
	}

	handlers.NewPortfolioHandler(portfolioSvc, uploader).Register(root, requireSession)
	handlers.NewEditorHandler(portfolioSvc).Register(root, requireSession)
	handlers.NewPagesHandler(renderer, gate).Register(r)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting portfolio service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
