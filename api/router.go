package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prasetyowira/mxlabel/api/middleware"
	"github.com/prasetyowira/mxlabel/constant"
	appLogger "github.com/prasetyowira/mxlabel/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler  *Handler
	router   *chi.Mux
	username string
	password string
}

// NewRouter creates a new router. Basic auth protects the API routes only
// when both credentials are set.
func NewRouter(handler *Handler, username, password string) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger())

	return &Router{
		handler:  handler,
		router:   r,
		username: username,
		password: password,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	// API routes, optionally behind Basic Auth
	r.router.Group(func(g chi.Router) {
		if r.username != "" && r.password != "" {
			creds := map[string]string{
				r.username: r.password,
			}
			g.Use(chimiddleware.BasicAuth("mxlabel", creds))
		}

		g.Post(constant.RouteCreateLabel, r.handler.CreateLabel)
		g.Get(constant.RouteLabelDocument, r.handler.DownloadDocument)
		g.Get(constant.RouteLabelPreview, r.handler.PreviewImage)
		g.Get(constant.RouteLabelHistory, r.handler.GetHistory)
	})

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		appLogger.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
