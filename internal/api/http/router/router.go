package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtroode/taskmanager-server/internal/api/http/cookie"
	"github.com/dtroode/taskmanager-server/internal/api/http/handler"
	"github.com/dtroode/taskmanager-server/internal/api/http/middleware"
	"github.com/dtroode/taskmanager-server/internal/api/http/response"
	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/metrics"
	"github.com/dtroode/taskmanager-server/internal/model"
)

const welcomeMessage = "Task Manager API is running!"

// AuthService is the auth surface used by both the handlers and the authentication middleware.
type AuthService interface {
	handler.AuthService
	middleware.Authenticator
}

// Params holds the router dependencies. AssetStore and Gatherer are optional;
// their routes are only mounted when set.
type Params struct {
	AuthService    AuthService
	TaskService    handler.TaskService
	AssetStore     model.AssetStore
	ContextManager model.ContextManager
	Cookies        *cookie.Jar
	Metrics        metrics.Recorder
	Gatherer       prometheus.Gatherer
	BasePath       string
	HSTS           bool
}

// Router represents the HTTP router of the task manager API.
type Router struct {
	params Params
	logger *logger.Logger
}

// New creates new HTTP Router instance.
func New(params Params, logger *logger.Logger) *Router {
	if params.Metrics == nil {
		params.Metrics = metrics.Nop{}
	}
	return &Router{params: params, logger: logger}
}

// Register builds the handler tree with its middleware chain.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	mux.Use(
		chimiddleware.RequestID,
		middleware.NewLogging(r.logger).Handle,
		middleware.NewRecover(r.logger).Handle,
		middleware.NewMetrics(r.params.Metrics).Handle,
		middleware.NewSecurityHeaders(r.params.HSTS).Handle,
	)

	mux.NotFound(r.notFound)
	mux.MethodNotAllowed(r.notFound)

	mux.Get("/", welcome)
	if r.params.Gatherer != nil {
		mux.Handle("/metrics", metrics.Handler(r.params.Gatherer))
	}
	if r.params.AssetStore != nil {
		assetHandler := handler.NewAsset(r.params.AssetStore, r.logger)
		mux.Get("/static/*", assetHandler.Get)
		mux.Head("/static/*", assetHandler.Get)
	}

	mux.Route(r.basePath(), func(api chi.Router) {
		api.Route("/auth", r.registerAuthRoutes)
		api.Route("/tasks", r.registerTaskRoutes)
	})

	return mux
}

func (r *Router) registerAuthRoutes(auth chi.Router) {
	authHandler := handler.NewAuth(r.params.AuthService, r.params.Cookies, r.params.Metrics, r.logger)

	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/me", authHandler.Me)
}

func (r *Router) registerTaskRoutes(tasks chi.Router) {
	authenticate := middleware.NewAuthenticate(r.params.AuthService, r.params.ContextManager, r.logger)
	taskHandler := handler.NewTask(r.params.TaskService, r.params.ContextManager, r.logger)

	tasks.Use(authenticate.Handle)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/{id}", taskHandler.Get)
	tasks.Patch("/{id}", taskHandler.Update)
	tasks.Delete("/{id}", taskHandler.Delete)
}

func (r *Router) basePath() string {
	if r.params.BasePath == "" {
		return "/api/v0"
	}
	return r.params.BasePath
}

func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	response.Error(w, req, apierror.NewErrRouteNotFound(), r.logger)
}

func welcome(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}
