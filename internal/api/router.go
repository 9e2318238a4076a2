package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/atelier-lumiere/studio-portal/internal/api/handler"
	"github.com/atelier-lumiere/studio-portal/internal/api/middleware"
	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
	"github.com/atelier-lumiere/studio-portal/internal/core/service"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/backend"
)

// RouterDeps carries everything the portal router wires together.
type RouterDeps struct {
	Facade    *backend.Client
	NotifySvc ports.NotifyService
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	sessions := NewSessionStore(deps.Facade, deps.Log)
	authService := service.NewAuthService(deps.Facade, deps.JWTSecret, deps.TokenTTL)

	authHandler := handler.NewAuthHandler(authService, sessions)
	adminHandler := handler.NewAdminHandler(sessions)
	clientHandler := handler.NewClientHandler(sessions)
	staffHandler := handler.NewStaffHandler(sessions)
	notifyHandler := handler.NewNotifyHandler(deps.NotifySvc)
	bookingHandler := handler.NewBookingHandler(deps.Facade, deps.NotifySvc, deps.Log)

	authMW := middleware.Auth(deps.JWTSecret)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/notify", notifyHandler.Notify)
	e.POST("/v1/bookings", bookingHandler.Create)

	// --- Session routes ---
	e.POST("/auth/logout", authHandler.Logout, authMW)

	admin := e.Group("/v1/admin", authMW, middleware.RBAC(string(domain.RoleAdmin)))
	admin.GET("/state", adminHandler.State)
	admin.POST("/refresh", adminHandler.Refresh)
	admin.POST("/clients", adminHandler.CreateClient)
	admin.PATCH("/clients/:id", adminHandler.UpdateClient)
	admin.POST("/clients/:id/archive", adminHandler.ArchiveClient)
	admin.POST("/clients/:id/unarchive", adminHandler.UnarchiveClient)
	admin.POST("/clients/:id/select", adminHandler.SelectClient)
	admin.DELETE("/selection/client", adminHandler.DeselectClient)
	admin.POST("/clients/:id/documents", adminHandler.UploadDocument)
	admin.DELETE("/clients/:id/documents/:doc_id", adminHandler.DeleteDocument)
	admin.POST("/staff", adminHandler.CreateStaff)
	admin.PATCH("/appointments/:id", adminHandler.UpdateAppointment)
	admin.POST("/albums", adminHandler.CreateAlbum)
	admin.DELETE("/albums/:id", adminHandler.DeleteAlbum)
	admin.POST("/albums/:id/open", adminHandler.OpenAlbum)
	admin.POST("/albums/close", adminHandler.CloseAlbum)
	admin.POST("/albums/:id/photos", adminHandler.AddPhoto)
	admin.POST("/albums/:id/photos/upload", adminHandler.UploadPhotos)
	admin.DELETE("/photos/:id", adminHandler.DeletePhoto)

	client := e.Group("/v1/client", authMW, middleware.RBAC(string(domain.RoleClient)))
	client.GET("/home", clientHandler.Home)
	client.POST("/refresh", clientHandler.Refresh)
	client.POST("/albums/:id/open", clientHandler.OpenAlbum)
	client.POST("/albums/close", clientHandler.CloseAlbum)

	staff := e.Group("/v1/staff", authMW, middleware.RBAC(string(domain.RoleStaff), string(domain.RoleAdmin)))
	staff.GET("/state", staffHandler.State)
	staff.POST("/refresh", staffHandler.Refresh)
	staff.PATCH("/appointments/:id", staffHandler.UpdateAppointmentStatus)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/ready", readiness(deps.Facade))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// readiness reports whether the studio backend is reachable.
func readiness(facade *backend.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := facade.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
