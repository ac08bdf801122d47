package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"bookings/entity"
	"bookings/pkg/log"
)

type BookingsRepository interface {
	Insert(ctx context.Context, booking entity.Booking) (entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (entity.Booking, error)
	FindAll(ctx context.Context) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, reference string, status entity.Status) (entity.Booking, error)
}

type SessionsRepository interface {
	Create(ctx context.Context, username string) (string, error)
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type AdminCredentials struct {
	Username string
	// PasswordHash is a bcrypt hash; the plaintext password never reaches
	// the server's configuration.
	PasswordHash string
}

type Server struct {
	addr         string
	e            *echo.Echo
	eventBus     *cqrs.EventBus
	bookingsRepo BookingsRepository
	sessions     SessionsRepository
	admin        AdminCredentials
}

func NewServer(
	addr string,
	eventBus *cqrs.EventBus,
	bookingsRepo BookingsRepository,
	sessions SessionsRepository,
	admin AdminCredentials,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("bookings"))
	e.Use(CorrelationID)

	server := &Server{
		addr:         addr,
		e:            e,
		eventBus:     eventBus,
		bookingsRepo: bookingsRepo,
		sessions:     sessions,
		admin:        admin,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/bookings", server.PostBooking)
	api.GET("/bookings/:reference", server.GetBooking)

	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", server.PostLogin)
	adminGroup.POST("/logout", server.PostLogout)
	adminGroup.GET("/check", server.GetCheck)
	adminGroup.GET("/bookings", server.GetBookings, server.RequireAdmin)
	adminGroup.PATCH("/bookings/:reference/status", server.PatchBookingStatus, server.RequireAdmin)

	return server
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := s.e.Shutdown(context.Background()); err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()

	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
