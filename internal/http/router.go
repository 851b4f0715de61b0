// Package consolehttp собирает HTTP-поверхность консоли: страничные
// маршруты с guard-проверками, проксируемый REST платформы и служебные
// эндпоинты (здоровье, метрики).
package consolehttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lumed/spectra-console/internal/config"
	"github.com/lumed/spectra-console/internal/guard"
	"github.com/lumed/spectra-console/internal/http/handlers"
	"github.com/lumed/spectra-console/internal/http/middleware"
	"github.com/lumed/spectra-console/internal/metrics"
	"github.com/lumed/spectra-console/internal/session"
	"github.com/lumed/spectra-console/internal/upstream"
)

// LoginPath — страница входа; сюда перенаправляет RequireAuth.
const LoginPath = "/login"

// routes — таблица страничных маршрутов консоли.
// Guard-цепочка собирается в NewRouter: все страницы, кроме входа,
// требуют аутентифицированную сессию.
func routes() []guard.Route {
	return []guard.Route{
		{Path: "/", Name: "home", Title: "Главная страница"},
		{Path: "/patients", Name: "patients", Title: "Пациенты"},
		{Path: "/patients/{id}", Name: "patient-detail", Title: "Карточка пациента"},
		{Path: "/profile", Name: "profile", Title: "Профиль"},
		{Path: "/config", Name: "config", Title: "Конфигурация"},
		{Path: LoginPath, Name: "login", Title: "Авторизация", Layout: "login"},
	}
}

// NewRouter собирает корневой обработчик консоли.
func NewRouter(log *slog.Logger, cfg *config.Config, cl *upstream.Clients, mgr *session.Manager) http.Handler {
	h := handlers.New(cl, mgr)

	r := chi.NewRouter()

	requireAuth := []guard.Middleware{guard.RequireAuth(mgr, LoginPath)}

	// Страничные маршруты: guard решает, отдать метаданные страницы
	// или перенаправить на вход.
	for _, route := range routes() {
		chain := requireAuth
		if route.Layout == "login" {
			chain = nil
		}
		r.Get(route.Path, h.Page(route, chain))
	}

	// Auth-поверхность: вход и выход не требуют живых токенов.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/whoami", h.WhoAmI)
	})

	// Прокси REST платформы. Просроченный access-токен здесь не преграда:
	// транспорт сам обновит пару и повторит запрос.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/patients", func(r chi.Router) {
			r.Get("/", h.ListPatients)
			r.Post("/", h.CreatePatient)
			r.Get("/{id}", h.GetPatient)
			r.Patch("/{id}", h.UpdatePatient)
			r.Delete("/{id}", h.DeletePatient)

			r.Route("/{patientID}/sessions", func(r chi.Router) {
				r.Get("/", h.ListSessions)
				r.Post("/", h.CreateSession)
				r.Get("/{id}", h.GetSession)
				r.Patch("/{id}", h.UpdateSession)
				r.Delete("/{id}", h.DeleteSession)
				r.Post("/{id}/process", h.ProcessSession)
				r.Get("/{id}/process/status", h.SessionProcessStatus)
			})
		})

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", h.ListDevices)
			r.Post("/", h.CreateDevice)
			r.Get("/{id}", h.GetDevice)
			r.Patch("/{id}", h.UpdateDevice)
			r.Delete("/{id}", h.DeleteDevice)
			r.Post("/{id}/overlaps/random-fill", h.RandomFillOverlaps)

			r.Route("/{deviceID}/spectra", func(r chi.Router) {
				r.Get("/", h.ListSpectra)
				r.Post("/", h.CreateSpectrum)
				r.Patch("/{id}", h.UpdateSpectrum)
				r.Delete("/{id}", h.DeleteSpectrum)
			})
		})

		r.Route("/chromophores", func(r chi.Router) {
			r.Get("/", h.ListChromophores)
			r.Post("/", h.CreateChromophore)
			r.Patch("/{id}", h.UpdateChromophore)
			r.Delete("/{id}", h.DeleteChromophore)
		})

		r.Route("/overlaps", func(r chi.Router) {
			r.Get("/", h.ListOverlaps)
			r.Post("/", h.CreateOverlap)
			r.Patch("/{id}", h.UpdateOverlap)
			r.Delete("/{id}", h.DeleteOverlap)
		})

		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", h.ListOrganizations)
			r.Post("/", h.CreateOrganization)
			r.Patch("/{id}", h.UpdateOrganization)
			r.Delete("/{id}", h.DeleteOrganization)
		})

		r.Route("/roles", func(r chi.Router) {
			r.Get("/", h.ListRoles)
			r.Post("/", h.CreateRole)
			r.Delete("/{id}", h.DeleteRole)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{id}", h.GetUser)
			r.Patch("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
			r.Post("/{id}/role/add", h.AddUserRole)
		})

		r.Route("/raw_images", func(r chi.Router) {
			r.Post("/upload", h.UploadRawImages)
			r.Patch("/{id}", h.UpdateRawImage)
			r.Delete("/{id}", h.DeleteRawImage)
			r.Post("/delete", h.DeleteRawImages)
		})
	})

	return middleware.Chain(r,
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(log),
		metrics.Instrument,
		middleware.Session(cfg.Cookie.Name, cfg.Cookie.Secure),
		middleware.Timeout(cfg.Timeouts.Service),
	)
}

// NewServer — http.Server с консервативными таймаутами поверх роутера.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
