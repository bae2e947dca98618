package server

import (
	"log/slog"
	"net/http"

	"nations-server/internal/auth"
	authHandlers "nations-server/internal/auth/handlers"
	"nations-server/internal/budget"
	budgetHandlers "nations-server/internal/budget/handlers"
	"nations-server/internal/country"
	countryHandlers "nations-server/internal/country/handlers"
	"nations-server/internal/effect"
	effectHandlers "nations-server/internal/effect/handlers"
	"nations-server/internal/middleware"
	"nations-server/internal/military"
	militaryHandlers "nations-server/internal/military/handlers"
	mobilisationHandlers "nations-server/internal/mobilisation/handlers"
	"nations-server/internal/player"
	playerHandlers "nations-server/internal/player/handlers"
	"nations-server/internal/projection"
	projectionHandlers "nations-server/internal/projection/handlers"
	"nations-server/internal/report"
	reportHandlers "nations-server/internal/report/handlers"
	"nations-server/internal/rules"
	rulesHandlers "nations-server/internal/rules/handlers"
	serverHandlers "nations-server/internal/server/handlers"
	"nations-server/internal/shared/database"
	"nations-server/internal/tick"
	tickHandlers "nations-server/internal/tick/handlers"
	"nations-server/internal/world"
	worldHandlers "nations-server/internal/world/handlers"
)

// Routes owns every service the HTTP surface needs.
type Routes struct {
	db                *database.DB
	playerService     *player.Service
	authService       *auth.Service
	countryService    *country.Service
	budgetService     *budget.Service
	militaryService   *military.Service
	projectionService *projection.Service
	reportService     *report.Service
	worldService      *world.Service
	tickService       *tick.Service
	rulesRepo         *rules.Repository
	effectRepo        *effect.Repository
	oauthConfig       *auth.OAuthConfig
	logger            *slog.Logger
}

func NewRoutes(
	db *database.DB,
	playerService *player.Service,
	authService *auth.Service,
	countryService *country.Service,
	budgetService *budget.Service,
	militaryService *military.Service,
	projectionService *projection.Service,
	reportService *report.Service,
	worldService *world.Service,
	tickService *tick.Service,
	rulesRepo *rules.Repository,
	effectRepo *effect.Repository,
	oauthConfig *auth.OAuthConfig,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		db:                db,
		playerService:     playerService,
		authService:       authService,
		countryService:    countryService,
		budgetService:     budgetService,
		militaryService:   militaryService,
		projectionService: projectionService,
		reportService:     reportService,
		worldService:      worldService,
		tickService:       tickService,
		rulesRepo:         rulesRepo,
		effectRepo:        effectRepo,
		oauthConfig:       oauthConfig,
		logger:            logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	statusHandler := worldHandlers.NewStatusHandler(r.worldService, r.playerService, r.countryService)
	playersHandler := playerHandlers.NewPlayersHandler(r.playerService)
	meHandler := playerHandlers.NewMeHandler(r.playerService)
	logoutHandler := authHandlers.NewLogoutHandler()

	countryHandler := countryHandlers.NewCountryHandler(r.countryService)
	budgetHandler := budgetHandlers.NewBudgetHandler(r.budgetService, r.projectionService)
	mobilisationHandler := mobilisationHandlers.NewMobilisationHandler(r.countryService, r.rulesRepo)
	militaryHandler := militaryHandlers.NewMilitaryHandler(r.militaryService, r.projectionService)
	projectionHandler := projectionHandlers.NewProjectionHandler(r.projectionService)
	reportHandler := reportHandlers.NewReportHandler(r.reportService)
	effectHandler := effectHandlers.NewEffectHandler(r.effectRepo)
	rulesHandler := rulesHandlers.NewRulesHandler(r.rulesRepo)
	tickHandler := tickHandlers.NewTickHandler(r.tickService)

	googleAuthHandler := authHandlers.NewOAuthHandler(
		r.oauthConfig.GoogleProvider,
		r.playerService,
		r.authService,
		r.oauthConfig.GoogleConfigured,
	)
	discordAuthHandler := authHandlers.NewOAuthHandler(
		r.oauthConfig.DiscordProvider,
		r.playerService,
		r.authService,
		r.oauthConfig.DiscordConfigured,
	)

	countryAccess := middleware.NewCountryAccessMiddleware(r.db)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.Handle("/api/game/status", statusHandler)
	mux.Handle("/api/players", playersHandler)
	mux.HandleFunc("GET /api/countries", countryHandler.GetAll)
	mux.HandleFunc("GET /api/world/averages", countryHandler.GetWorldAverages)
	mux.HandleFunc("GET /api/mobilisation/levels", mobilisationHandler.GetLevels)
	mux.HandleFunc("GET /api/military/branches", militaryHandler.GetBranches)

	// Protected endpoints (authenticated users)
	mux.Handle("/api/players/me", middleware.JWTMiddleware(meHandler))

	// Country-scoped endpoints (governing player or admin)
	mux.Handle("GET /api/countries/{id}", countryAccess.Require(http.HandlerFunc(countryHandler.GetByID)))
	mux.Handle("GET /api/countries/{id}/budget", countryAccess.Require(http.HandlerFunc(budgetHandler.Get)))
	mux.Handle("PUT /api/countries/{id}/budget", countryAccess.Require(http.HandlerFunc(budgetHandler.Update)))
	mux.Handle("GET /api/countries/{id}/mobilisation", countryAccess.Require(http.HandlerFunc(mobilisationHandler.GetStatus)))
	mux.Handle("PUT /api/countries/{id}/mobilisation", countryAccess.Require(http.HandlerFunc(mobilisationHandler.UpdateScore)))
	mux.Handle("GET /api/countries/{id}/military", countryAccess.Require(http.HandlerFunc(militaryHandler.GetUnits)))
	mux.Handle("GET /api/countries/{id}/projection", countryAccess.Require(http.HandlerFunc(projectionHandler.Preview)))
	mux.Handle("GET /api/countries/{id}/report", countryAccess.Require(http.HandlerFunc(reportHandler.GetCabinetReport)))
	mux.Handle("GET /api/countries/{id}/effects", countryAccess.Require(http.HandlerFunc(effectHandler.GetByCountry)))

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("POST /api/admin/countries/{id}/effects", middleware.RequireAdmin(http.HandlerFunc(effectHandler.Create)))
	mux.Handle("DELETE /api/admin/effects/{effectID}", middleware.RequireAdmin(http.HandlerFunc(effectHandler.Delete)))
	mux.Handle("GET /api/admin/rules", middleware.RequireAdmin(http.HandlerFunc(rulesHandler.GetAll)))
	mux.Handle("GET /api/admin/rules/{key}", middleware.RequireAdmin(http.HandlerFunc(rulesHandler.Get)))
	mux.Handle("PUT /api/admin/rules/{key}", middleware.RequireAdmin(http.HandlerFunc(rulesHandler.Update)))
	mux.Handle("GET /api/admin/countries/{id}/projection", middleware.RequireAdmin(http.HandlerFunc(projectionHandler.Debug)))
	mux.Handle("POST /api/admin/tick", middleware.RequireAdmin(http.HandlerFunc(tickHandler.Run)))

	// OAuth endpoints
	mux.HandleFunc("/auth/google", googleAuthHandler.HandleAuth)
	mux.HandleFunc("/auth/google/callback", googleAuthHandler.HandleCallback)
	mux.HandleFunc("/auth/discord", discordAuthHandler.HandleAuth)
	mux.HandleFunc("/auth/discord/callback", discordAuthHandler.HandleCallback)
	mux.Handle("/auth/logout", logoutHandler)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/game/status", "/api/players", "/api/countries", "/api/world/averages"},
		"country_endpoints", []string{"budget", "mobilisation", "military", "projection", "report", "effects"},
		"admin_endpoints", []string{"/api/admin/rules", "/api/admin/tick", "/api/admin/countries/{id}/effects"},
		"auth_endpoints", []string{"/auth/google", "/auth/discord", "/auth/logout"},
	)

	return mux
}
