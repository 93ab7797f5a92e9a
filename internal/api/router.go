package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/THGoZ/lauch-shifts-sub001/internal/shift"
)

type RouterConfig struct {
	Service *shift.Service
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Patient endpoints
	r.Post("/patients", createPatientHandler(cfg.Service))
	r.Get("/patients", listPatientsHandler(cfg.Service))
	r.Get("/patients/{id}", getPatientHandler(cfg.Service))
	r.Delete("/patients/{id}", deletePatientHandler(cfg.Service))

	// Shift endpoints
	r.Post("/shifts", createShiftHandler(cfg.Service))
	r.Get("/shifts", listShiftsHandler(cfg.Service))
	r.Get("/shifts/{id}", getShiftHandler(cfg.Service))
	r.Patch("/shifts/{id}/status", updateShiftStatusHandler(cfg.Service))
	r.Delete("/shifts/{id}", deleteShiftHandler(cfg.Service))

	// Calendar projections
	r.Get("/calendar/agenda", agendaHandler(cfg.Service))
	r.Get("/calendar/day/{date}", timelineHandler(cfg.Service))
	r.Get("/calendar/marked", markedDatesHandler(cfg.Service))

	// Practice configuration
	r.Get("/availability", availabilityHandler(cfg.Service))

	return r
}
