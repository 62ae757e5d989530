package httpapi

import (
	"net/http"
	"time"

	"buildtrack-backend-go/internal/config"
	"buildtrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB      *sqlx.DB
	Config  config.Config
	Tokens  services.TokenService
	Revoked *services.RevocationSet
	Mailer  services.Mailer
	Hub     *services.EventHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.EventHub) *Server {
	tokens := services.TokenService{
		Secret:    []byte(cfg.JWTSecret),
		Issuer:    cfg.JWTIssuer,
		AccessTTL: time.Duration(cfg.AccessTTLSeconds) * time.Second,
		ResetTTL:  time.Duration(cfg.ResetTTLSeconds) * time.Second,
	}
	mailer := services.Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.EmailUser,
		Password: cfg.EmailPassword,
	}
	return &Server{
		DB:      db,
		Config:  cfg,
		Tokens:  tokens,
		Revoked: services.NewRevocationSet(cfg.RedisAddr, cfg.RedisPassword),
		Mailer:  mailer,
		Hub:     hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	auth := WithAuth(s.Tokens, s.Revoked)

	r.Route("/api", func(api chi.Router) {
		api.Route("/user", func(user chi.Router) {
			user.Post("/signup", s.Signup)
			user.Post("/signin", s.Signin)
			user.Post("/forgot-password", s.ForgotPassword)
			user.Post("/reset-password", s.ResetPassword)

			user.Group(func(protected chi.Router) {
				protected.Use(auth)
				protected.Post("/logout", s.Logout)
				protected.Get("/users", s.ListUsers)
				protected.Get("/user-details/{userId}", s.UserDetails)
				protected.Put("/user-details/{userId}", s.UpdateUserDetails)
				protected.With(RequireRole("ADMIN")).Delete("/user-details/{userId}", s.DeleteUser)
				protected.With(RequireRole("ADMIN")).Post("/user-details/create", s.AdminCreateUser)
				protected.With(RequireRole("ADMIN")).Post("/import", s.ImportUsers)
			})
		})

		api.Route("/projects", func(projects chi.Router) {
			projects.Use(auth)
			projects.Get("/", s.ListProjects)
			projects.Post("/", s.CreateProject)
			projects.Get("/{projectId}", s.GetProject)
			projects.Put("/{projectId}", s.UpdateProject)
			projects.Delete("/{projectId}", s.DeleteProject)
		})

		api.Route("/tasks", func(tasks chi.Router) {
			tasks.Use(auth)
			tasks.Get("/", s.ListTasks)
			tasks.Post("/", s.CreateTask)
			tasks.Put("/{taskId}", s.UpdateTask)
			tasks.Delete("/{taskId}", s.DeleteTask)
		})

		api.Route("/equipment", func(equipment chi.Router) {
			equipment.Use(auth)
			equipment.Get("/", s.ListEquipment)
			equipment.Post("/", s.CreateEquipment)
			equipment.Put("/{equipmentId}", s.UpdateEquipment)
			equipment.Delete("/{equipmentId}", s.DeleteEquipment)
		})

		api.Route("/expenses", func(expenses chi.Router) {
			expenses.Use(auth)
			expenses.Get("/", s.ListExpenses)
			expenses.Get("/summary", s.ExpenseSummary)
			expenses.Post("/", s.CreateExpense)
			expenses.Put("/{expenseId}", s.UpdateExpense)
			expenses.Delete("/{expenseId}", s.DeleteExpense)
		})

		api.Route("/labour-assignments", func(labour chi.Router) {
			labour.Use(auth)
			labour.Get("/", s.ListLabourAssignments)
			labour.Post("/", s.CreateLabourAssignment)
			labour.Put("/{assignmentId}", s.UpdateLabourAssignment)
			labour.Delete("/{assignmentId}", s.DeleteLabourAssignment)
		})

		api.Route("/purchases", func(purchases chi.Router) {
			purchases.Use(auth)
			purchases.Get("/", s.ListPurchases)
			purchases.Post("/", s.CreatePurchase)
			purchases.Delete("/{purchaseId}", s.DeletePurchase)
		})

		api.Route("/inquiries", func(inquiries chi.Router) {
			inquiries.Post("/", s.CreateInquiry)
			inquiries.With(auth, RequireRole("ADMIN")).Get("/", s.ListInquiries)
		})

		api.Route("/notifications", func(notifications chi.Router) {
			notifications.Use(auth)
			notifications.Get("/", s.ListNotifications)
			notifications.Post("/", s.CreateNotification)
			notifications.Put("/mark-all/read", s.MarkAllNotificationsRead)
			notifications.Put("/{notificationId}", s.UpdateNotification)
			notifications.Delete("/{notificationId}", s.DeleteNotification)
		})

		api.With(auth, RequireRole("ADMIN")).Get("/admin/metrics/history", s.MetricsHistory)
	})

	r.Get("/ws/events", s.EventsSocket)

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.Config.UploadStoragePath)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	return r
}
