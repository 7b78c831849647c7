package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cupidwave/compat"
	"cupidwave/config"
	"cupidwave/logger"
	"cupidwave/middleware"
	"cupidwave/routes"
	"cupidwave/services"
	"cupidwave/socket"
	"cupidwave/store"
)

func newServeCmd() *cobra.Command {
	var tablePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the realtime socket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			table, err := loadCompatTable(tablePath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, table)
		},
	}
	cmd.Flags().StringVar(&tablePath, "compat-table", "", "YAML compatibility table replacing the built-in one")
	return cmd
}

func loadCompatTable(path string) (*compat.Table, error) {
	if path == "" {
		return compat.DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compatibility table: %w", err)
	}
	return compat.LoadTable(data)
}

func serve(ctx context.Context, cfg *config.Config, table *compat.Table) error {
	base, err := logger.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer base.Sync() //nolint:errcheck
	log := logger.Named(base, "server")

	// Initialize DynamoDB client and service
	awsCfg, err := store.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return err
	}
	dynamoService := store.NewDynamoService(store.NewDynamoClient(awsCfg, cfg.AWS), cfg.AWS.TablePrefix, logger.Named(base, "dynamo"))
	log.Infow("DynamoDB client initialized", "region", cfg.AWS.Region, "prefix", cfg.AWS.TablePrefix)

	profiles := store.NewProfileStore(dynamoService)
	answers := store.NewAnswerStore(dynamoService)
	swipes := store.NewSwipeStore(dynamoService)
	conversations := store.NewConversationStore(dynamoService)
	messages := store.NewMessageStore(dynamoService)
	reactions := store.NewReactionStore(dynamoService)
	blocks := store.NewBlockStore(dynamoService)
	reports := store.NewReportStore(dynamoService)
	proposals := store.NewGroupProposalStore(dynamoService)
	purchases := store.NewPurchaseStore(dynamoService)
	notifications := store.NewNotificationStore(dynamoService)
	stats := store.NewStatsStore(dynamoService)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AdminIDs, logger.Named(base, "auth"))
	hub := socket.NewSocketServer(auth, conversations, logger.Named(base, "socket"))
	liveNotifications := &services.LiveNotifications{NotificationStore: notifications, Publisher: hub, Room: socket.UserRoom}

	// Initialize Services
	userProfileService := &services.UserProfileService{
		Profiles: profiles,
		Blocks:   blocks,
		Geocoder: services.NewNominatimGeocoder(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent),
		Log:      logger.Named(base, "profiles"),
	}
	s3Service := &services.S3Service{
		Presigner:     s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		Bucket:        cfg.AWS.Bucket,
		TTL:           cfg.AWS.PresignTTL,
		Conversations: conversations,
		Log:           logger.Named(base, "uploads"),
	}
	matchService := &services.MatchmakingService{
		Profiles: profiles,
		Answers:  answers,
		Blocks:   blocks,
		Table:    table,
		Log:      logger.Named(base, "matchmaking"),
	}
	tornadoService := &services.TornadoService{
		Profiles:      profiles,
		Swipes:        swipes,
		Conversations: conversations,
		Notifications: liveNotifications,
		Blocks:        blocks,
		Answers:       answers,
		Table:         table,
		DailyLimit:    cfg.Tornado.DailySwipeLimit,
		Log:           logger.Named(base, "tornado"),
	}
	chatService := &services.ChatService{
		Conversations: conversations,
		Messages:      messages,
		Reactions:     reactions,
		Profiles:      profiles,
		Blocks:        blocks,
		Notifications: notifications,
		Publisher:     hub,
		Log:           logger.Named(base, "chat"),
	}
	moderationService := &services.ModerationService{
		Blocks:   blocks,
		Reports:  reports,
		Profiles: profiles,
		Log:      logger.Named(base, "moderation"),
	}
	groupService := &services.GroupService{
		Proposals:     proposals,
		Profiles:      profiles,
		Blocks:        blocks,
		Conversations: conversations,
		Notifications: liveNotifications,
		Log:           logger.Named(base, "groups"),
	}
	paymentService := &services.PaymentService{
		Purchases:     purchases,
		Profiles:      profiles,
		Conversations: conversations,
		Poster:        chatService,
		Checkout: &services.StripeCheckout{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			SuccessURL:    cfg.Stripe.SuccessURL,
			CancelURL:     cfg.Stripe.CancelURL,
		},
		Currency:     cfg.Stripe.Currency,
		PollAttempts: cfg.Payments.PollAttempts,
		PollDelay:    cfg.Payments.PollDelay,
		Log:          logger.Named(base, "payments"),
	}
	pushService := &services.PushService{
		Profiles:      profiles,
		Blocks:        blocks,
		Notifications: liveNotifications,
		RadiusKm:      cfg.Push.RadiusKm,
		MaxRecipients: cfg.Push.MaxRecipients,
		Log:           logger.Named(base, "push"),
	}
	notificationService := &services.NotificationService{
		Notifications: notifications,
		Log:           logger.Named(base, "notifications"),
	}
	adminService := &services.AdminService{
		Reports:  reports,
		Profiles: userProfileService,
		Tables:   stats,
		Log:      logger.Named(base, "admin"),
	}

	r := routes.NewRouter(routes.Services{
		Profiles:      userProfileService,
		Uploads:       s3Service,
		Matchmaking:   matchService,
		Tornado:       tornadoService,
		Chat:          chatService,
		Moderation:    moderationService,
		Groups:        groupService,
		Payments:      paymentService,
		Push:          pushService,
		Notifications: notificationService,
		Admin:         adminService,
	}, auth, hub, logger.Named(base, "http"))

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler,
		ReadHeaderTimeout: cfg.Server.RequestTimeout,
	}

	go func() {
		if err := hub.Serve(); err != nil {
			log.Errorw("socket server stopped", "error", err)
		}
	}()
	defer hub.Close() //nolint:errcheck

	return run(ctx, srv, log)
}

// run serves until the listener fails or the process is asked to stop.
func run(ctx context.Context, srv *http.Server, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
