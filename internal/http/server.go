package http

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/config"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/http/middleware"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/metrics"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

var validate = validator.New()

type Server struct{ e *echo.Echo }

// NewServer wires repositories and routes. The unknown-instructor sentinel id
// is resolved from the roster once, here, and handed to the handlers that
// need a default.
func NewServer(cfg config.Config, db *sqlx.DB) (*Server, error) {
	customersRepo := repository.NewCustomersRepository(db)
	entriesRepo := repository.NewEntriesRepository(db)
	instructorsRepo := repository.NewInstructorsRepository(db)
	minutesRepo := repository.NewMinutesRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	unknownInstructorID, err := instructorsRepo.IDByName(ctx, model.InstructorUnknown)
	if err != nil {
		return nil, fmt.Errorf("resolve unknown instructor: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger(), middleware.RequestID())

	metrics.MustRegister(prometheus.DefaultRegisterer)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/health", healthHandler(db))
	api.GET("/stats/count", statsCountHandler(customersRepo))

	api.GET("/customers", listCustomersHandler(customersRepo))
	api.POST("/customers", createCustomerHandler(customersRepo))
	api.POST("/customer", findOrCreateCustomerHandler(customersRepo))
	api.GET("/customer/:id", getCustomerHandler(customersRepo, entriesRepo))
	api.PUT("/customer/:id", renameCustomerHandler(customersRepo))
	api.DELETE("/customer/:id", deleteCustomerHandler(customersRepo))
	api.GET("/customers/:id/entries", listEntriesHandler(entriesRepo))

	api.POST("/entry", createEntryHandler(entriesRepo, unknownInstructorID))
	api.PUT("/entry/:id", updateEntryHandler(entriesRepo, unknownInstructorID))
	api.DELETE("/entry/:id", deleteEntryHandler(entriesRepo))

	api.GET("/instructors", listInstructorsHandler(instructorsRepo))
	api.GET("/instructors/:id/customers", instructorCustomersHandler(instructorsRepo))

	api.GET("/minutes/sum/:customer_id", sumMinutesHandler(minutesRepo))
	api.GET("/minutes/:customer_id", listMinutesHandler(minutesRepo))
	api.POST("/minutes", createMinuteHandler(minutesRepo))
	api.PUT("/minutes/:id", updateMinuteHandler(minutesRepo))
	api.DELETE("/minutes/:id", deleteMinuteHandler(minutesRepo))

	if cfg.HTTP.StaticDir != "" {
		e.Static("/", cfg.HTTP.StaticDir)
	}

	return &Server{e: e}, nil
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
