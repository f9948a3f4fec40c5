package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"shaadicircle/config"
	"shaadicircle/internal/adapters/auth"
	"shaadicircle/internal/adapters/email"
	"shaadicircle/internal/adapters/storage"
	httpdelivery "shaadicircle/internal/delivery/http"
	"shaadicircle/internal/delivery/http/controllers"
	"shaadicircle/internal/delivery/http/middleware"
	"shaadicircle/internal/repository/postgres"
	"shaadicircle/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
	bcryptCost      = 12
)

// @title Shaadi Circle API
// @version 1.0
// @description Invite-gated wedding photo sharing backend.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("database ping failed", "err", err)
		os.Exit(1)
	}

	// Adapters
	hasher := auth.NewBcryptHasher(bcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKey,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}
	mediaStore, err := storage.NewMinioStore(storage.MinioConfig{
		Endpoint:      cfg.MinioEndpoint,
		AccessKey:     cfg.MinioAccessKey,
		SecretKey:     cfg.MinioSecretKey,
		Bucket:        cfg.MinioBucket,
		UseSSL:        cfg.MinioUseSSL,
		PublicBaseURL: cfg.MinioPublicURL,
	})
	if err != nil {
		logger.Error("media store init failed", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	shaadiRepo := postgres.NewShaadiRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	userService := services.NewUserService(userRepo, membershipRepo, shaadiRepo, inviteRepo, hasher, tokenIssuer, cfg.JWTExpiry, emailService, serviceTimeout)
	shaadiService := services.NewShaadiService(shaadiRepo, membershipRepo, serviceTimeout)
	inviteService := services.NewInviteService(inviteRepo, membershipRepo, shaadiRepo, emailService, cfg.PublicBaseURL, cfg.InviteTTL, serviceTimeout)
	postService := services.NewPostService(postRepo, commentRepo, userRepo, membershipRepo, serviceTimeout)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo, membershipRepo, serviceTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:    controllers.NewAuthController(logger, userService),
		Shaadi:  controllers.NewShaadiController(logger, shaadiService),
		Invite:  controllers.NewInviteController(logger, inviteService),
		Post:    controllers.NewPostController(logger, postService),
		Comment: controllers.NewCommentController(logger, commentService),
		Media:   controllers.NewMediaController(logger, mediaStore),
	}, tokenVerifier, logger)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
