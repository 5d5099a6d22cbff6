package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/api/handler"
	"github.com/devfolio/portfolio-api/internal/api/middleware"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
	"github.com/devfolio/portfolio-api/internal/core/service"
	"github.com/devfolio/portfolio-api/internal/infrastructure/db/postgres"
	"github.com/devfolio/portfolio-api/internal/infrastructure/db/redis"
	"github.com/devfolio/portfolio-api/internal/infrastructure/mail"
	"github.com/devfolio/portfolio-api/internal/infrastructure/storage"
	"github.com/devfolio/portfolio-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with all dependencies wired and routes
// registered.
func NewRouter(cfg *config.Config, db *sql.DB, rdb *goredis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
	}))
	e.Use(echoprometheus.NewMiddleware("portfolio"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	// A zero TTL disables the principal cache; every request then resolves
	// the credential snapshot from Postgres.
	var cache ports.PrincipalCache
	if cfg.Auth.CacheTTL > 0 {
		cache = redis.NewPrincipalCache(rdb, cfg.Auth.CacheTTL)
	}

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	})
	avatars, err := storage.NewAvatarStore(cfg.Upload.Dir, "/uploads", cfg.Upload.MaxSizeBytes)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(userRepo, tokens, hasher, cache, log)
	resetService := service.NewResetService(userRepo, tokens, hasher, mailer, cache, cfg.Auth.ResetTTL, cfg.Site.URL, log)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo, log)
	postService := service.NewPostService(postRepo, log)
	commentService := service.NewCommentService(commentRepo, postRepo, log)
	adminService := service.NewAdminService(userRepo, projectRepo, postRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService, resetService, userService)
	userHandler := handler.NewUserHandler(authService, userService, avatars)
	projectHandler := handler.NewProjectHandler(projectService)
	postHandler := handler.NewPostHandler(postService, commentService)
	adminHandler := handler.NewAdminHandler(adminService)
	homepageHandler := handler.NewHomepageHandler(projectService, postService, adminService)
	contactHandler := handler.NewContactHandler(mailer, cfg.SMTP.ContactTo, log)
	feedHandler := handler.NewFeedHandler(postService, cfg.Site)

	authRequired := middleware.Auth(tokens, userRepo, cache, log)
	optionalAuth := middleware.OptionalAuth(tokens, userRepo, cache, log)
	adminOnly := middleware.RequireRole(userRepo, log, domain.RoleAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static assets, including uploaded avatars ---
	e.Static("/", cfg.StaticDir)

	apiGroup := e.Group("/api")

	// --- Auth routes ---
	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.POST("/forgotpassword", authHandler.ForgotPassword)
	auth.PUT("/resetpassword", authHandler.ResetPassword)

	// --- User routes ---
	user := apiGroup.Group("/user", authRequired)
	user.GET("/profile", userHandler.Profile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.PUT("/changepassword", userHandler.ChangePassword)
	user.POST("/avatar", userHandler.UploadAvatar)

	// --- Project routes ---
	apiGroup.GET("/projects", projectHandler.List)
	apiGroup.GET("/projects/:id", projectHandler.Get)
	apiGroup.POST("/projects", projectHandler.Create, authRequired)
	apiGroup.PUT("/projects/:id", projectHandler.Update, authRequired)
	apiGroup.DELETE("/projects/:id", projectHandler.Delete, authRequired)

	// --- Blog routes ---
	apiGroup.GET("/posts", postHandler.List, optionalAuth)
	apiGroup.GET("/posts/:slug", postHandler.GetBySlug)
	apiGroup.POST("/posts", postHandler.Create, authRequired)
	apiGroup.PUT("/posts/:id", postHandler.Update, authRequired)
	apiGroup.DELETE("/posts/:id", postHandler.Delete, authRequired)

	apiGroup.GET("/posts/:slug/comments", postHandler.ListComments)
	apiGroup.POST("/posts/:slug/comments", postHandler.AddComment, authRequired)
	apiGroup.DELETE("/comments/:id", postHandler.DeleteComment, authRequired)

	// --- Admin routes ---
	admin := apiGroup.Group("/admin", authRequired, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/projects", adminHandler.ListProjects)
	admin.PUT("/users/:id/role", adminHandler.UpdateRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Public site routes ---
	apiGroup.GET("/homepage", homepageHandler.Show)
	apiGroup.POST("/contact", contactHandler.Submit)
	e.GET("/rss", feedHandler.RSS)

	return e, nil
}
