package app

import (
	"net/http"
	"time"

	"entryledger/internal/auth"
	"entryledger/internal/cache"
	"entryledger/internal/config"
	"entryledger/internal/dto"
	"entryledger/internal/handlers"
	"entryledger/internal/height"
	"entryledger/internal/repo"
	"entryledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, clock *height.BlockClock) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/height", heightHandler(clock))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, 24*time.Hour)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))
	entryRepo := repo.NewPGEntryRepo(db)
	entryCache := cache.NewEntryCache(rdb, cfg.Redis.DefaultTTL.Duration())
	entrySvc := service.NewEntryService(entryRepo, entryCache, clock)
	entryHandler := handlers.NewEntryHandler(entrySvc)
	registerEntryRoutes(protected, entryHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Entry Ledger API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func heightHandler(clock *height.BlockClock) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, err := clock.Current(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, dto.HeightResponse{Height: h})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerEntryRoutes(api *gin.RouterGroup, h *handlers.EntryHandler) {
	api.POST("/entry", h.Create)
	api.GET("/entry", h.Fetch)
	api.PUT("/entry", h.Update)
	api.DELETE("/entry", h.Delete)
	api.POST("/entry/delegate", h.Delegate)
	api.PUT("/entry/priority", h.AssignPriority)
	api.PUT("/entry/deadline", h.ConfigureDeadline)
	api.GET("/entry/completed", h.CheckCompletion)
	api.GET("/entry/diagnostics", h.Diagnostics)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}
