package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tawitawi/provincial-portal/internal/api/handler"
	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
	"github.com/tawitawi/provincial-portal/internal/infrastructure/http/handlers"
)

// SubCollection is a mounted nested collection handler.
type SubCollection interface {
	Kind() domain.ItemKind
	Mount(g *echo.Group, auth echo.MiddlewareFunc)
}

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Codec  ports.SessionCodec
	Cookie middleware.CookieConfig

	Auth           ports.AuthService
	DelegatedLogin ports.DelegatedTokenService
	Users          ports.UserService
	Activity       ports.ActivityService
	Profiles       ports.ProfileService
	Municipalities ports.MunicipalityService
	Directories    ports.DirectoryService
	News           ports.NewsService
	Gazette        ports.GazetteService
	SubCollections []SubCollection

	// Limiter guards the login routes. Nil disables rate limiting.
	Limiter       ports.RateLimiter
	LimitCapacity int

	// Health serves /health and /health/ready. Nil means no readiness probes.
	Health *handlers.HealthHandler
	Logger zerolog.Logger
}

// ownerPaths maps each sub-collection owner to its resource root.
var ownerPaths = map[domain.OwnerKind]string{
	domain.OwnerProfile:      "/api/profiles",
	domain.OwnerMunicipality: "/api/municipalities",
	domain.OwnerDirectory:    "/api/directories",
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("2M"))
	e.Use(echoprometheus.NewMiddleware("province"))
	e.Use(middleware.Session(d.Codec, d.Cookie.Name))

	authed := middleware.RequireAuth()
	province := middleware.RequireRole(domain.ProvinceRoles...)
	municipal := middleware.RequireRole(domain.MunicipalWriteRoles...)
	superAdmin := middleware.RequireRole(domain.RoleSuperAdmin)

	loginGuard := middleware.RateLimit(d.Limiter, d.LimitCapacity, d.Logger)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth, d.DelegatedLogin, d.Cookie)
	e.POST("/api/auth/login", authHandler.Login, loginGuard)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/session", authHandler.Session, authed)
	e.POST("/api/auth/delegated-login", authHandler.DelegatedLogin, loginGuard)
	e.POST("/api/super-admin-token", authHandler.IssueToken, superAdmin)

	// --- Profiles ---
	profileHandler := handler.NewProfileHandler(d.Profiles)
	profiles := e.Group("/api/profiles")
	profiles.GET("", profileHandler.List)
	profiles.GET("/check-position", profileHandler.CheckPosition, authed)
	profiles.GET("/slug/:slug", profileHandler.GetBySlug)
	profiles.GET("/:id", profileHandler.Get)
	profiles.GET("/:id/stats", profileHandler.Stats)
	profiles.POST("", profileHandler.Create, province)
	profiles.PUT("/:id", profileHandler.Update, province)
	profiles.PATCH("/:id", profileHandler.Patch, province)
	profiles.DELETE("/:id", profileHandler.Delete, province)

	e.GET("/api/officials", profileHandler.Officials)
	e.GET("/api/officials/:position", profileHandler.ByPosition)
	e.GET("/api/officials/:position/:slug", profileHandler.GetByPosition)

	// --- Municipalities ---
	municipalityHandler := handler.NewMunicipalityHandler(d.Municipalities)
	municipalities := e.Group("/api/municipalities")
	municipalities.GET("", municipalityHandler.List)
	municipalities.GET("/slug/:slug", municipalityHandler.GetBySlug)
	municipalities.GET("/:id", municipalityHandler.Get)
	municipalities.POST("", municipalityHandler.Create, province)
	municipalities.PUT("/:id", municipalityHandler.Update, municipal)
	municipalities.PATCH("/:id", municipalityHandler.Patch, municipal)
	municipalities.DELETE("/:id", municipalityHandler.Delete, province)

	// --- Directories ---
	directoryHandler := handler.NewDirectoryHandler(d.Directories)
	directories := e.Group("/api/directories")
	directories.GET("", directoryHandler.List)
	directories.GET("/slug/:slug", directoryHandler.GetBySlug)
	directories.GET("/:id", directoryHandler.Get)
	directories.POST("", directoryHandler.Create, province)
	directories.PUT("/:id", directoryHandler.Update, province)
	directories.PATCH("/:id", directoryHandler.Patch, province)
	directories.DELETE("/:id", directoryHandler.Delete, province)

	// --- Sub-collections ---
	groups := map[domain.OwnerKind]*echo.Group{
		domain.OwnerProfile:      profiles,
		domain.OwnerMunicipality: municipalities,
		domain.OwnerDirectory:    directories,
	}
	for _, sc := range d.SubCollections {
		owner := sc.Kind().Owner
		g, ok := groups[owner]
		if !ok {
			g = e.Group(ownerPaths[owner])
		}
		// Municipal admins may write under their own municipality; the
		// service narrows the scope further.
		write := province
		if owner == domain.OwnerMunicipality {
			write = municipal
		}
		sc.Mount(g, write)
	}

	// --- News ---
	newsHandler := handler.NewNewsHandler(d.News)
	news := e.Group("/api/news")
	news.GET("", newsHandler.List)
	news.GET("/featured", newsHandler.Featured)
	news.GET("/slug/:slug", newsHandler.GetBySlug)
	news.GET("/:id", newsHandler.Get)
	news.POST("", newsHandler.Create, province)
	news.PUT("/:id", newsHandler.Update, province)
	news.PATCH("/:id", newsHandler.SetFeatured, province)
	news.POST("/:id/publish", newsHandler.Publish, province)
	news.POST("/:id/unpublish", newsHandler.Unpublish, province)
	news.DELETE("/:id", newsHandler.Delete, province)

	// --- Gazette ---
	gazetteHandler := handler.NewGazetteHandler(d.Gazette)
	gazette := e.Group("/api/gazette")
	gazette.GET("", gazetteHandler.List)
	gazette.GET("/years", gazetteHandler.Years)
	gazette.POST("", gazetteHandler.Create, province)
	gazette.DELETE("/:id", gazetteHandler.Delete, province)

	// --- Admin console ---
	adminHandler := handler.NewAdminHandler(d.Users, d.Activity)
	e.GET("/api/activity", adminHandler.Activity, authed)
	admins := e.Group("/api/municipal-admins", superAdmin)
	admins.GET("", adminHandler.ListMunicipalAdmins)
	admins.POST("", adminHandler.CreateMunicipalAdmin)
	admins.PATCH("/:id", adminHandler.SetMunicipalAdminActive)
	admins.DELETE("/:id", adminHandler.DeleteMunicipalAdmin)

	// --- Health probes, metrics and docs (no auth required) ---
	health := d.Health
	if health == nil {
		health = handlers.NewHealthHandler()
	}
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
