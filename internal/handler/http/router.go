package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/grocerymart/backoffice-go/internal/handler/http/middleware"
	"github.com/grocerymart/backoffice-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the server settings the router needs.
type RouterConfig struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadsPath is the local storage directory served under /uploads. Empty disables it.
	UploadsPath string
}

type Handlers struct {
	Auth       AuthHandler
	Staff      StaffHandler
	TaskType   TaskTypeHandler
	Roster     RosterHandler
	MyTask     MyTaskHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
}

func NewRouter(JWTService jwt.Service, cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.LogLevel,
	})).With(
		slog.String("app", "grocery-backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/staff", func(r chi.Router) {
				r.Get("/me", h.Staff.Me)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Staff.List)
					r.Post("/", h.Staff.Register)
					r.Get("/{id}", h.Staff.Get)
				})
			})

			r.Route("/task-types", func(r chi.Router) {
				r.Get("/", h.TaskType.List)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.TaskType.Add)
					r.Patch("/{id}/toggle", h.TaskType.Toggle)
				})
			})

			r.Route("/roster", func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Route("/templates", func(r chi.Router) {
					r.Get("/", h.Roster.ListTemplates)
					r.Post("/", h.Roster.CreateTemplate)
					r.Get("/{id}", h.Roster.GetTemplate)
					r.Put("/{id}", h.Roster.EditTemplate)
					r.Delete("/{id}", h.Roster.DeleteTemplate)
				})

				r.Get("/calendar", h.Roster.Calendar)

				r.Route("/days/{date}", func(r chi.Router) {
					r.Get("/", h.Roster.DayDetails)
					r.Delete("/", h.Roster.DeleteSchedule)
					r.Get("/management", h.Roster.DayManagement)
					r.Post("/apply", h.Roster.ApplyTemplate)
					r.Post("/acknowledge", h.Roster.AcknowledgeDay)
					r.Post("/allocations", h.Roster.AddStaffToDay)
				})

				r.Route("/allocations/{id}", func(r chi.Router) {
					r.Delete("/", h.Roster.DeleteAllocation)
					r.Patch("/task", h.Roster.EditTaskName)
					r.Patch("/staff", h.Roster.ReassignTask)
				})
			})

			// Staff self-service
			r.Route("/my", func(r chi.Router) {
				r.Use(middleware.RequireStaff)
				r.Get("/schedule", h.MyTask.MySchedule)
				r.Get("/tasks/{date}", h.MyTask.MyDayTask)
				r.Post("/tasks/{id}/start", h.MyTask.StartTask)
				r.Post("/tasks/{id}/complete", h.MyTask.CompleteTask)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
					r.Get("/history", h.Attendance.History)
				})

				r.With(middleware.RequireManager).Put("/status", h.Attendance.MarkStatus)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/", h.Leave.Apply)
					r.Get("/my", h.Leave.ListMine)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Leave.ListForApproval)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Payroll.PayRun)
				r.Get("/{staffId}", h.Payroll.PayDetails)
			})

			r.With(middleware.RequireManager).Get("/expenses", h.Payroll.ListExpenses)
		})
	})

	if cfg.UploadsPath != "" {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsPath))))
		})
	}

	return r
}
