package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts a handler's routes onto an API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouteRegistrarFunc adapts a function to the RouteRegistrar interface
type RouteRegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes calls f
func (f RouteRegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// Guard wraps a registrar so its routes run behind extra middleware,
// without leaking the middleware to other registrars.
func Guard(registrar RouteRegistrar, middleware ...gin.HandlerFunc) RouteRegistrar {
	return RouteRegistrarFunc(func(rg *gin.RouterGroup) {
		scoped := rg.Group("", middleware...)
		registrar.RegisterRoutes(scoped)
	})
}

// Router owns the gin engine and mounts registrars under the versioned
// API prefix.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// Option configures the router
type Option func(*Router)

// WithAPIVersion overrides the default v1 prefix
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// New creates a router over an existing engine
func New(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Setup mounts every queued registrar under /api/{version}
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
