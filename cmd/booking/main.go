package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/subosito/gotenv"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/api"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/bot"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/config"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/dialog"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/db"
	httpx "github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/http"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/logger"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/payments"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/storage"
)

func main() {
	// .env необязателен
	_ = gotenv.Load()

	cfgPath := os.Getenv("BOOKING_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/example.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := db.Migrate(cfg.Postgres.DSN, cfg.Postgres.Migrations); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	toursRepo := tours.NewRepo(pool)
	bookingsRepo := bookings.NewRepo(pool)
	stateRepo := dialog.NewRepo(pool)

	var sandbox *payments.Sandbox
	var gateways []payments.Gateway
	if cfg.Payments.Sandbox.Enabled {
		sandbox = payments.NewSandbox(cfg.App.BaseURL, cfg.Payments.Sandbox.Secret)
		gateways = append(gateways, sandbox)
		log.Warn("sandbox payments enabled, bookings are confirmed without a real charge")
	}
	if rp := cfg.Payments.Razorpay; rp.KeyID != "" {
		gateways = append(gateways, payments.NewRazorpay(rp.KeyID, rp.KeySecret, rp.BaseURL))
	}
	if h := cfg.Payments.HDFC; h.MerchantID != "" {
		gateways = append(gateways, payments.NewHDFC(h.MerchantID, h.Secret, h.CheckoutURL, h.ReturnURL))
	}
	registry := payments.NewRegistry(gateways...)
	log.Info("payment providers", "enabled", registry.Names(), "default", cfg.Payments.Default)

	svc := booking.NewService(log, toursRepo, bookingsRepo, registry, cfg.Pricing.RoomRate, cfg.Payments.Default)

	deps := api.Deps{
		Log:         log,
		Service:     svc,
		Tiers:       toursRepo,
		Bookings:    bookingsRepo,
		JWTSecret:   cfg.Auth.JWTSecret,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}
	archive, err := storage.NewArchive(ctx, storage.Options{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	switch {
	case err == nil:
		deps.Archive = archive
	case errors.Is(err, storage.ErrDisabled):
		log.Info("report archive disabled")
	default:
		log.Error("report archive init failed", "err", err)
	}

	routes := []httpx.Route{{Pattern: "/api/", Handler: api.NewRouter(deps)}}
	if sandbox != nil {
		routes = append(routes, httpx.Route{Pattern: "/payments/pay", Handler: payments.NewHandler(log, sandbox, svc)})
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, routes...)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	if cfg.Telegram.Token != "" {
		tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			log.Error("telegram init failed", "err", err)
		} else {
			b := bot.New(tg, log, stateRepo, svc, toursRepo, bookingsRepo, cfg.Telegram.TourID, cfg.Telegram.AdminChatID)
			log.Info("bot authorized", "username", tg.Self.UserName)
			go func() {
				if err := b.Run(ctx, 60); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("bot stopped", "err", err)
				}
			}()
		}
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
