// Package http wires the studio backend's REST API: the persistence-backed
// implementation of the contract the portal's facade client consumes.
package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/atelier-lumiere/studio-portal/internal/api"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// serviceToken, when non-empty, is required as a bearer credential on every
// /v1 route.
func NewRouter(db *mongodriver.Database, rdb *redis.Client, serviceToken string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories and handlers ---
	users := mongo.NewUserRepository(db)
	appointments := mongo.NewAppointmentRepository(db)
	albums := mongo.NewAlbumRepository(db)
	gallery := mongo.NewGalleryRepository(db)
	documents := mongo.NewDocumentRepository(db)

	authHandler := handlers.NewAuthHandler(users)
	appointmentHandler := handlers.NewAppointmentHandler(appointments)
	clientHandler := handlers.NewClientHandler(users)
	staffHandler := handlers.NewStaffHandler(users)
	albumHandler := handlers.NewAlbumHandler(albums, gallery)
	documentHandler := handlers.NewDocumentHandler(users, documents)

	v1 := e.Group("/v1", serviceAuth(serviceToken))

	v1.POST("/auth/verify", authHandler.Verify)

	v1.GET("/appointments", appointmentHandler.List)
	v1.POST("/appointments", appointmentHandler.Create)
	v1.PATCH("/appointments/:id", appointmentHandler.Update)

	v1.GET("/clients", clientHandler.List)
	v1.POST("/clients", clientHandler.Create)
	v1.PATCH("/clients/:id", clientHandler.Update)
	v1.POST("/clients/:id/archive", clientHandler.Archive)
	v1.POST("/clients/:id/unarchive", clientHandler.Unarchive)
	v1.GET("/clients/:id/documents", documentHandler.List)
	v1.POST("/clients/:id/documents", documentHandler.Upload)
	v1.DELETE("/clients/:id/documents/:doc_id", documentHandler.Delete)

	v1.GET("/staff", staffHandler.List)
	v1.POST("/staff", staffHandler.Create)

	v1.GET("/albums", albumHandler.List)
	v1.POST("/albums", albumHandler.Create)
	v1.DELETE("/albums/:id", albumHandler.Delete)
	v1.GET("/albums/:id/photos", albumHandler.ListPhotos)
	v1.POST("/albums/:id/photos", albumHandler.AddPhoto)

	v1.GET("/photos", albumHandler.ListAllPhotos)
	v1.DELETE("/photos/:id", albumHandler.DeletePhoto)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

// serviceAuth enforces the shared service token between portal and backend.
// An empty configured token disables the check, for local development.
func serviceAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return next(c)
			}
			expect := "Bearer " + token
			got := c.Request().Header.Get("Authorization")
			if subtle.ConstantTimeCompare([]byte(got), []byte(expect)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid service token")
			}
			return next(c)
		}
	}
}
