// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into tab-specific
// files (trip.go, schedule.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// TripServicer defines the home tab operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type TripServicer interface {
	Get(ctx context.Context) domain.TripMeta
	Overview(ctx context.Context) service.Overview
	DayCount(ctx context.Context) (int, error)
	Update(ctx context.Context, m domain.TripMeta) (domain.TripMeta, error)
}

// ScheduleServicer defines the schedule tab operations.
type ScheduleServicer interface {
	List(ctx context.Context) []domain.ItineraryDay
	Weekday(date string) string
	AddDay(ctx context.Context) ([]domain.ItineraryDay, error)
	RemoveLastDay(ctx context.Context) ([]domain.ItineraryDay, error)
	AddItem(ctx context.Context, dayIdx int) (domain.ItineraryDay, int, error)
	UpdateItem(ctx context.Context, dayIdx, itemIdx int, item domain.ItineraryItem) (domain.ItineraryDay, error)
	DeleteItem(ctx context.Context, dayIdx, itemIdx int) (domain.ItineraryDay, error)
}

// FlightServicer defines the bookings tab operations.
type FlightServicer interface {
	List(ctx context.Context) []domain.Flight
	Add(ctx context.Context, f domain.Flight) ([]domain.Flight, error)
	Update(ctx context.Context, index int, f domain.Flight) ([]domain.Flight, error)
	Delete(ctx context.Context, index int) ([]domain.Flight, error)
}

// ShoppingServicer defines the shopping tab operations.
type ShoppingServicer interface {
	List(ctx context.Context) []domain.ShoppingItem
	Grouped(ctx context.Context) []domain.CategoryGroup
	Add(ctx context.Context, item domain.ShoppingItem) (domain.ShoppingItem, error)
	Update(ctx context.Context, id int64, item domain.ShoppingItem) (domain.ShoppingItem, error)
	ToggleDone(ctx context.Context, id int64) (domain.ShoppingItem, error)
	Delete(ctx context.Context, id int64) error
}

// ExpenseServicer defines the expense tab operations.
type ExpenseServicer interface {
	List(ctx context.Context) []domain.ExpenseEntry
	Summary(ctx context.Context) []domain.DaySummary
	Add(ctx context.Context, e domain.ExpenseEntry) (domain.ExpenseEntry, error)
	Update(ctx context.Context, id int64, e domain.ExpenseEntry) (domain.ExpenseEntry, error)
	Delete(ctx context.Context, id int64) error
}

// BackupServicer defines the backup code and reset operations.
type BackupServicer interface {
	Export(ctx context.Context) (string, error)
	Import(ctx context.Context, code string) (domain.BackupInfo, error)
	Reset(ctx context.Context) error
}

// Services groups the dependencies of a Server. Tests set only the ones the
// routes under test need.
type Services struct {
	Trip     TripServicer
	Schedule ScheduleServicer
	Flights  FlightServicer
	Shopping ShoppingServicer
	Expenses ExpenseServicer
	Backup   BackupServicer
}

// Server implements every API endpoint.
// Wire it in main.go by mounting Routes on the chi router.
type Server struct {
	trip     TripServicer
	schedule ScheduleServicer
	flights  FlightServicer
	shopping ShoppingServicer
	expenses ExpenseServicer
	backup   BackupServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{
		trip:     svc.Trip,
		schedule: svc.Schedule,
		flights:  svc.Flights,
		shopping: svc.Shopping,
		expenses: svc.Expenses,
		backup:   svc.Backup,
		log:      slog.Default(),
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{})
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trip", func(r chi.Router) {
		r.Get("/", s.GetTrip)
		r.Delete("/", s.ResetTrip)
		r.Get("/meta", s.GetTripMeta)
		r.Put("/meta", s.UpdateTripMeta)
		r.Get("/day-count", s.GetDayCount)
	})

	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", s.ListDays)
		r.Post("/days", s.AddDay)
		r.Delete("/days/last", s.RemoveLastDay)
		r.Post("/days/{day}/items", s.AddItem)
		r.Put("/days/{day}/items/{item}", s.UpdateItem)
		r.Delete("/days/{day}/items/{item}", s.DeleteItem)
	})

	r.Route("/flights", func(r chi.Router) {
		r.Get("/", s.ListFlights)
		r.Post("/", s.AddFlight)
		r.Put("/{index}", s.UpdateFlight)
		r.Delete("/{index}", s.DeleteFlight)
	})

	r.Route("/shopping", func(r chi.Router) {
		r.Get("/", s.ListShopping)
		r.Post("/", s.AddShoppingItem)
		r.Put("/{id}", s.UpdateShoppingItem)
		r.Post("/{id}/toggle", s.ToggleShoppingItem)
		r.Delete("/{id}", s.DeleteShoppingItem)
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", s.ListExpenses)
		r.Get("/summary", s.ExpenseSummary)
		r.Post("/", s.AddExpense)
		r.Put("/{id}", s.UpdateExpense)
		r.Delete("/{id}", s.DeleteExpense)
	})

	r.Get("/backup", s.ExportBackup)
	r.Post("/backup", s.ImportBackup)

	r.Post("/images", s.UploadImage)
}

// Handler returns a chi router serving every endpoint of s.
// main.go adds its middleware stack in front of the same routes.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}
