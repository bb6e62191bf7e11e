package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/medisphere/care-service/internal/api/http"
	"github.com/medisphere/care-service/internal/api/http/handlers"
	"github.com/medisphere/care-service/internal/auth"
	"github.com/medisphere/care-service/internal/config"
	"github.com/medisphere/care-service/internal/events"
	"github.com/medisphere/care-service/internal/observability"
	"github.com/medisphere/care-service/internal/persistence"
	"github.com/medisphere/care-service/internal/repository"
	"github.com/medisphere/care-service/internal/service"
	"github.com/medisphere/care-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	patientRepo := repository.NewPatientRepository(pool)
	practitionerRepo := repository.NewPractitionerRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	// The signing key and TTL are read once here; every component that
	// needs them receives them through its constructor.
	codec := auth.NewCodec(cfg.Auth.JWTSecret)
	issuer := auth.NewIssuer(codec, cfg.Auth.TokenTTL())
	verifier := auth.NewVerifier(codec)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	throttle := service.NewLoginThrottle(redis.ClientHandle(),
		cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginAttemptWindow())

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		PatientRepo:      patientRepo,
		PractitionerRepo: practitionerRepo,
		Issuer:           issuer,
		Dispatcher:       dispatcher,
		Throttle:         throttle,
	})
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo, practitionerRepo, dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Patients:      handlers.NewPatientsHandler(authService),
		Practitioners: handlers.NewPractitionersHandler(authService),
		Appointments:  handlers.NewAppointmentsHandler(appointmentService),
		Authenticator: auth.NewAuthenticator(verifier, logger),
		Policy:        auth.NewPolicy(httptransport.DefaultPolicyRules()),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
