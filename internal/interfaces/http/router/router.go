// Package router wires handlers onto the gin engine. Routes split into
// three surfaces: the public storefront API, the cookie-guarded admin API
// and the unversioned webhook endpoint.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers public routes on the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// AdminRouteRegistrar registers routes behind the admin session guard
type AdminRouteRegistrar interface {
	RegisterAdminRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine          *gin.Engine
	apiVersion      string
	adminGuard      gin.HandlerFunc
	registrars      []RouteRegistrar
	adminRegistrars []AdminRouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAdminGuard sets the middleware protecting admin routes
func WithAdminGuard(guard gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.adminGuard = guard
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a public route registrar
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterAdmin adds an admin route registrar
func (r *Router) RegisterAdmin(registrar AdminRouteRegistrar) *Router {
	r.adminRegistrars = append(r.adminRegistrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	if r.adminGuard != nil {
		admin.Use(r.adminGuard)
	}
	for _, registrar := range r.adminRegistrars {
		registrar.RegisterAdminRoutes(admin)
	}
}
