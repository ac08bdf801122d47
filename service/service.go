package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"bookings/db"
	"bookings/db/bookings"
	"bookings/db/sessions"
	"bookings/http"
	"bookings/pkg/log"
	"bookings/pubsub"
	"bookings/pubsub/bus"
	"bookings/pubsub/event"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	db              *sqlx.DB
	watermillRouter *message.Router
	httpServer      *http.Server
}

func New(
	addr string,
	dbConn *sqlx.DB,
	redisClient *redis.Client,
	emailSender event.EmailSender,
	ledgerAPI event.LedgerAPI,
	admin http.AdminCredentials,
	sessionTTL time.Duration,
) Service {
	bookingsRepo := bookings.NewPostgresRepository(dbConn)
	sessionsRepo := sessions.NewRedisRepository(redisClient, sessionTTL)

	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	var redisPublisher message.Publisher
	redisPublisher = pubsub.NewRedisPublisher(redisClient, watermillLogger)
	redisPublisher = log.CorrelationPublisherDecorator{Publisher: redisPublisher}

	eventBus, err := bus.NewEventBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	eventsHandler := event.NewHandler(emailSender, ledgerAPI)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)

	watermillRouter, err := pubsub.NewWatermillRouter(
		eventProcessorConfig,
		eventsHandler,
		watermillLogger,
	)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(
		addr,
		eventBus,
		bookingsRepo,
		sessionsRepo,
		admin,
	)

	return Service{
		db:              dbConn,
		watermillRouter: watermillRouter,
		httpServer:      httpServer,
	}
}

func (s Service) Run(ctx context.Context) error {
	if err := db.InitializeDatabaseSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// the HTTP server starts only after the router is running, so the
		// service is not reachable before the fan-out consumers are ready
		<-s.watermillRouter.Running()

		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
