package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/ali-aktas/HocaLingo-sub002/internal/config"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain/srs"
	"github.com/ali-aktas/HocaLingo-sub002/internal/events"
	"github.com/ali-aktas/HocaLingo-sub002/internal/platform/postgres"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/auth"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/progress"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/review"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/triage"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// eventLogHandler records study lifecycle events in the structured log so
// mastery, goal and quota milestones show up in operational tooling.
type eventLogHandler struct {
	logger *slog.Logger
}

// HandleEvent implements events.Handler.
func (h *eventLogHandler) HandleEvent(_ context.Context, event *events.Event) error {
	switch event.Type {
	case events.EventConceptMastered:
		var payload events.ConceptMasteredPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		h.logger.Info("concept mastered",
			slog.String("user_id", payload.UserID.String()),
			slog.Int64("concept_id", payload.ConceptID),
			slog.String("direction", payload.Direction),
			slog.Float64("interval_days", payload.IntervalDays))
	case events.EventDailyGoalCompleted:
		var payload events.DailyGoalCompletedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		h.logger.Info("daily goal completed",
			slog.String("user_id", payload.UserID.String()),
			slog.String("date", payload.Date),
			slog.Int("total_answers", payload.TotalAnswers))
	case events.EventQuotaExceeded:
		var payload events.QuotaExceededPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		h.logger.Info("daily selection quota exceeded",
			slog.String("user_id", payload.UserID.String()),
			slog.String("package_id", payload.PackageID),
			slog.Int("quota", payload.Quota),
			slog.Bool("premium", payload.Premium))
	default:
		h.logger.Debug("ignoring event with unsupported type",
			slog.String("event_type", event.Type),
			slog.String("event_id", event.ID.String()))
	}
	return nil
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore      store.UserStore
	conceptStore   store.ConceptStore
	selectionStore store.SelectionStore
	progressStore  store.StudyProgressStore
	ledgerStore    store.LedgerStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	srsService       srs.Service
	triageService    triage.Service
	reviewService    review.Service
	progressService  progress.Service
	deckService      service.DeckService

	// Event system
	eventEmitter events.Emitter
}

// newApplication creates a new application instance with all dependencies
// initialized. The configuration, logger and database connection must be
// established before calling it.
func newApplication(
	_ context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.conceptStore = postgres.NewPostgresConceptStore(db, logger)
	app.selectionStore = postgres.NewPostgresSelectionStore(db, logger)
	app.progressStore = postgres.NewPostgresStudyProgressStore(db, logger)
	app.ledgerStore = postgres.NewPostgresLedgerStore(db, logger)

	emitter := events.NewInMemoryEmitter(logger)
	emitter.RegisterHandler(&eventLogHandler{
		logger: logger.With(slog.String("component", "event_log_handler")),
	})
	app.eventEmitter = emitter

	app.srsService = srs.NewDefaultService()

	app.progressService = progress.NewService(
		app.ledgerStore,
		app.eventEmitter,
		cfg.Study,
		logger,
	)

	// The progress service doubles as the review recorder so every graded
	// answer lands in the daily ledger.
	app.reviewService = review.NewService(
		db,
		app.conceptStore,
		app.selectionStore,
		app.progressStore,
		app.srsService,
		app.progressService,
		app.eventEmitter,
		logger,
	)

	app.triageService = triage.NewService(
		db,
		app.conceptStore,
		app.selectionStore,
		app.progressStore,
		app.userStore,
		app.eventEmitter,
		cfg.Study,
		logger,
	)

	app.deckService = service.NewDeckService(
		app.selectionStore,
		app.progressStore,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
