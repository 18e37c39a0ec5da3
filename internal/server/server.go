package server

import (
	"context"
	"net/http"

	"workbridge/internal/account"
	"workbridge/internal/application"
	"workbridge/internal/auth"
	"workbridge/internal/config"
	"workbridge/internal/credit"
	"workbridge/internal/email"
	"workbridge/internal/job"
	"workbridge/internal/unlock"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(TimeoutMiddleware(cfg.RequestTimeout))

	accountRepo := account.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	jobRepo := job.NewRepository(db)
	unlockRepo := unlock.NewRepository(db)
	applicationRepo := application.NewRepository(db)

	accountService := account.NewService(accountRepo, emailService, cfg.JWTSecret)
	jobService := job.NewService(jobRepo, creditRepo)
	unlockService := unlock.NewService(unlockRepo, jobRepo, accountRepo, creditRepo)
	applicationService := application.NewService(applicationRepo, jobRepo, unlockRepo, accountRepo, emailService)

	accountHandler := account.NewHandler(accountService)
	creditHandler := credit.NewHandler(creditRepo, accountRepo, emailService)
	jobHandler := job.NewHandler(jobService)
	unlockHandler := unlock.NewHandler(unlockService)
	applicationHandler := application.NewHandler(applicationService)

	public := router.Group("/auth")
	{
		public.POST("/register", accountHandler.Register)
		public.POST("/login", accountHandler.Login)
		public.POST("/refresh", accountHandler.Refresh)
	}

	router.GET("/packages", creditHandler.ListPackages)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", accountHandler.GetMe)
		protected.PUT("/me", accountHandler.UpdateMe)

		protected.POST("/credits/purchase", creditHandler.Purchase)
		protected.GET("/credits/balance", creditHandler.GetBalance)
		protected.GET("/credits/transactions", creditHandler.ListTransactions)

		protected.GET("/jobs", jobHandler.ListJobs)
		protected.GET("/jobs/:jobID", jobHandler.GetJob)
	}

	clientOnly := router.Group("/")
	clientOnly.Use(authMiddleware, auth.RequireRole(auth.RoleClient))
	{
		clientOnly.POST("/jobs", jobHandler.PostJob)
		clientOnly.POST("/jobs/:jobID/close", jobHandler.CloseJob)
		clientOnly.POST("/jobs/:jobID/complete", jobHandler.CompleteJob)
		clientOnly.DELETE("/jobs/:jobID", jobHandler.DeleteJob)
		clientOnly.GET("/my/jobs", jobHandler.ListMyJobs)
		clientOnly.GET("/jobs/:jobID/unlocks", unlockHandler.ListUnlocks)
		clientOnly.GET("/jobs/:jobID/applications", applicationHandler.ListApplications)
	}

	contractorOnly := router.Group("/")
	contractorOnly.Use(authMiddleware, auth.RequireRole(auth.RoleContractor))
	{
		contractorOnly.POST("/jobs/:jobID/unlock", unlockHandler.UnlockContact)
		contractorOnly.GET("/jobs/:jobID/contact", unlockHandler.GetContact)
		contractorOnly.POST("/jobs/:jobID/apply", applicationHandler.Apply)
		contractorOnly.GET("/my/applications", applicationHandler.MyApplications)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
