package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/makehaven/tasks-display/internal/handlers/admin/settings"
	"github.com/makehaven/tasks-display/internal/handlers/display"
	"github.com/makehaven/tasks-display/internal/metrics"
	"github.com/makehaven/tasks-display/internal/middleware"
	"github.com/makehaven/tasks-display/internal/services"
	"github.com/makehaven/tasks-display/pkg/debug"
)

/*
 * Package routes wires the HTTP surface of the tasks display: the public
 * kiosk routes, the admin settings routes and the operational endpoints.
 */

// Dependencies holds everything SetupRoutes needs to build handlers.
type Dependencies struct {
	DisplayService  *services.DisplayService
	SettingsService *services.SettingsService
	Metrics         *metrics.Metrics
}

/*
 * SetupRoutes configures all application routes and middleware.
 *
 * Route Groups:
 *   - Kiosk routes (/display/tasks/...), gated by the code word
 *   - Admin routes (/admin/..., /api/admin/...), gated by an admin JWT cookie
 *   - Operational routes (/health, /metrics)
 *
 * Middleware Applied:
 *   - Request ID and instrumentation (all routes)
 *   - SameOrigin and AdminOnly (admin routes)
 */
func SetupRoutes(r *mux.Router, deps Dependencies) {
	debug.Info("Initializing route configuration")

	r.Use(middleware.RequestID)
	r.Use(middleware.Instrument(deps.Metrics))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)

	// The fragment route is registered first so "fragment" is never taken as a code word.
	debug.Debug("Setting up display routes")
	displayHandler := display.NewHandler(deps.DisplayService, deps.Metrics)
	r.HandleFunc(services.FragmentPathPrefix+"{code_word}", displayHandler.GetFragment).Methods(http.MethodGet)
	r.HandleFunc(services.DisplayPathPrefix+"{code_word}", displayHandler.GetPage).Methods(http.MethodGet)

	debug.Debug("Setting up admin settings routes")
	settingsHandler := settings.NewDisplaySettingsHandler(deps.SettingsService, deps.Metrics)

	adminForm := r.PathPrefix("/admin/config").Subrouter()
	adminForm.Use(middleware.SameOrigin, middleware.AdminOnly)
	adminForm.HandleFunc("/makehaven-tasks/settings", settingsHandler.GetSettingsForm).Methods(http.MethodGet)
	adminForm.HandleFunc("/makehaven-tasks/settings", settingsHandler.SubmitSettingsForm).Methods(http.MethodPost)

	adminAPI := r.PathPrefix("/api/admin/settings").Subrouter()
	adminAPI.Use(middleware.SameOrigin, middleware.AdminOnly)
	adminAPI.HandleFunc("/display", settingsHandler.GetSettings).Methods(http.MethodGet)
	adminAPI.HandleFunc("/display", settingsHandler.UpdateSettings).Methods(http.MethodPut)

	debug.Info("Route configuration completed")
}
