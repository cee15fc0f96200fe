package pokemon

import (
	"context"
	"log/slog"

	"go-evkeeper/internal/pokemon/routes"
	"go-evkeeper/internal/pokemon/services"
	refservices "go-evkeeper/internal/reference/services"
	"go-evkeeper/pkg/database"
	"go-evkeeper/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the pokemon module: trained Pokemon records and
// their EV training operations.
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new pokemon module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, resolver *refservices.Resolver) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, resolver)
	routesModule := routes.NewModule(service)

	m := &Module{
		BaseModule: module.NewBaseModule("pokemon", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	if err := repository.CreateIndexes(context.Background()); err != nil {
		slog.Warn("Failed to create pokemon indexes", "error", err)
	}

	slog.Info("Pokemon module initialized", "name", m.Name())

	return m
}

// RegisterUnifiedRoutes registers all pokemon routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	slog.Info("Registering pokemon unified routes", "basePath", basePath)
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility
func (m *Module) Routes(r chi.Router) {
	// Pokemon module uses only Huma v2 routes
}

// GetService returns the pokemon service for testing or external access
func (m *Module) GetService() *services.Service {
	return m.service
}
