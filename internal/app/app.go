package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"eventcatalog/config"
	"eventcatalog/internal/adapters/auth"
	"eventcatalog/internal/adapters/email"
	delivery "eventcatalog/internal/delivery/http"
	"eventcatalog/internal/delivery/http/controllers"
	"eventcatalog/internal/delivery/http/middleware"
	"eventcatalog/internal/domain"
	"eventcatalog/internal/eventbus"
	"eventcatalog/internal/projection"
	"eventcatalog/internal/repository/memory"
	"eventcatalog/internal/repository/mongodb"
	"eventcatalog/internal/repository/postgres"
	"eventcatalog/internal/services"
	"eventcatalog/internal/usecase"
	"eventcatalog/pkg/logattr"
)

const (
	serviceName       = "event-catalog"
	readHeaderTimeout = 5 * time.Second
)

// App owns the process-wide resources: store connections, the domain event publisher
// and the HTTP server.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	writeDB     *sql.DB
	readDB      *sql.DB
	mongoClient *mongo.Client
	server      *http.Server
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(logattr.ServiceName(serviceName)),
	}
}

// Run connects the stores, wires the command and query paths and starts serving HTTP.
// It returns once the listener is bound; serving continues until Stop.
func (app *App) Run(ctx context.Context) error {
	handler, err := app.buildHandler(ctx)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", ":"+app.cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", app.cfg.Port, err)
	}
	app.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := app.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("http server stopped", logattr.Error(err.Error()))
		}
	}()

	app.logger.Info("event catalog started",
		slog.String("addr", listener.Addr().String()),
		slog.String("write_store", app.cfg.WriteStoreDriver),
		slog.String("read_store", app.cfg.ReadStoreDriver))
	return nil
}

func (app *App) Stop(ctx context.Context) {
	if app.server != nil {
		if err := app.server.Shutdown(ctx); err != nil {
			app.logger.Error("error stopping http server", logattr.Error(err.Error()))
		}
	}
	if app.mongoClient != nil {
		if err := app.mongoClient.Disconnect(ctx); err != nil {
			app.logger.Error("error disconnecting from mongo", logattr.Error(err.Error()))
		}
	}
	for _, db := range []*sql.DB{app.readDB, app.writeDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil {
			app.logger.Error("error closing database", logattr.Error(err.Error()))
		}
	}
	app.logger.Info("event catalog stopped")
}

func (app *App) buildHandler(ctx context.Context) (http.Handler, error) {
	publisher := eventbus.NewPublisher(app.logger, eventbus.WithHandlerTimeout(app.cfg.ProjectionTimeout))

	writes, err := app.openWriteStore(ctx, publisher)
	if err != nil {
		return nil, err
	}
	reads, err := app.openReadStore(ctx)
	if err != nil {
		return nil, err
	}

	projector := projection.NewEventProjector(reads, app.logger)
	if err := projector.EnsureSchema(ctx); err != nil {
		// The projector retries on the next domain event.
		app.logger.Warn("read schema not ready at startup", logattr.Error(err.Error()))
	}
	projector.Register(publisher)

	if to := app.cfg.Email.NotifyTo; to != "" {
		mailer := email.NewMailer(email.MailerConfig{
			Provider:    app.cfg.Email.Provider,
			FromAddress: app.cfg.Email.FromAddress,
			FromName:    app.cfg.Email.FromName,
			SES: email.SESConfig{
				Region:             app.cfg.Email.AWSRegion,
				AccessKeyID:        app.cfg.Email.AWSAccessKeyID,
				SecretAccessKey:    app.cfg.Email.AWSSecretAccessKey,
				InsecureSkipVerify: app.cfg.Email.InsecureSkipVerify,
			},
		}, app.logger)
		services.NewEventNotifier(mailer, email.NewTemplateRenderer(), to, app.logger).Register(publisher)
	}

	commands := usecase.NewCommandBus(usecase.NewEventCommandHandlers(writes, app.logger, app.cfg.RequestTimeout).Handlers())
	queries := usecase.NewQueryBus(usecase.NewEventQueryHandlers(reads, app.cfg.RequestTimeout).Handlers())

	router := delivery.NewRouter(
		controllers.NewEventController(app.logger, commands, queries),
		controllers.NewHealthController(),
		auth.NewJWTVerifier(app.cfg.JWTSecret),
		app.logger,
	)
	return middleware.LoggingMiddleware(app.logger, middleware.CORS(app.cfg.CORSAllowedOrigins, router)), nil
}

func (app *App) openWriteStore(ctx context.Context, publisher domain.DomainEventPublisher) (domain.EventCommandRepository, error) {
	switch app.cfg.WriteStoreDriver {
	case config.DriverMemory:
		return memory.NewEventCommandRepository(publisher, time.Now), nil
	case config.DriverPostgres:
		db, err := openPostgres(ctx, app.cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("open write store: %w", err)
		}
		app.writeDB = db
		if err := postgres.EnsureCommandSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("ensure write schema: %w", err)
		}
		return postgres.NewEventCommandRepository(db, publisher), nil
	}
	return nil, fmt.Errorf("unsupported write store driver %q", app.cfg.WriteStoreDriver)
}

func (app *App) openReadStore(ctx context.Context) (domain.EventReadStore, error) {
	switch app.cfg.ReadStoreDriver {
	case config.DriverMemory:
		return memory.NewEventReadRepository(time.Now), nil
	case config.DriverPostgres:
		url := app.cfg.ReadDatabaseURL()
		if url == app.cfg.DBUrl && app.writeDB != nil {
			return postgres.NewEventReadRepository(app.writeDB), nil
		}
		db, err := openPostgres(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("open read store: %w", err)
		}
		app.readDB = db
		return postgres.NewEventReadRepository(db), nil
	case config.DriverMongoDB:
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		opts := options.Client().ApplyURI(app.cfg.MongoURL).SetServerAPIOptions(serverAPI)
		client, err := mongo.Connect(opts)
		if err != nil {
			return nil, fmt.Errorf("error connecting to mongodb: %w", err)
		}
		app.mongoClient = client
		return mongodb.NewEventReadRepository(client, app.cfg.MongoDatabase, mongodb.DefaultCollection), nil
	}
	return nil, fmt.Errorf("unsupported read store driver %q", app.cfg.ReadStoreDriver)
}

func openPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
