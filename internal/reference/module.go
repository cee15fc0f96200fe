package reference

import (
	"context"
	"log/slog"

	"go-evkeeper/internal/reference/routes"
	"go-evkeeper/internal/reference/services"
	"go-evkeeper/pkg/config"
	"go-evkeeper/pkg/database"
	"go-evkeeper/pkg/module"
	"go-evkeeper/pkg/pokeapi"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
)

// Module represents the reference module: cached PokeAPI species, item
// and nature data.
type Module struct {
	*module.BaseModule
	resolver *services.Resolver
	routes   *routes.Module
	cron     *cron.Cron
}

// NewModule creates a new reference module instance. redis may be nil;
// the resolver then runs without the durable cache tier.
func NewModule(mongodb *database.MongoDB, redis *database.Redis, client pokeapi.Client) *Module {
	var durable services.DurableStore
	if redis != nil {
		durable = services.NewRedisStore(redis)
	}

	resolver := services.NewResolver(client, durable)
	routesModule := routes.NewModule(resolver)

	m := &Module{
		BaseModule: module.NewBaseModule("reference", mongodb, redis),
		resolver:   resolver,
		routes:     routesModule,
	}

	slog.Info("Reference module initialized", "name", m.Name(), "durable_cache", durable != nil)

	return m
}

// Resolver returns the reference resolver for other modules
func (m *Module) Resolver() *services.Resolver {
	return m.resolver
}

// RegisterUnifiedRoutes registers all reference routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	slog.Info("Registering reference unified routes", "basePath", basePath)
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility
func (m *Module) Routes(r chi.Router) {
	// Reference module uses only Huma v2 routes
}

// StartBackgroundTasks warms the EV item cache on startup and
// schedules a periodic re-warm that repairs cache gaps and retries
// earlier failures.
func (m *Module) StartBackgroundTasks(ctx context.Context) {
	slog.Info("Starting background tasks", "module", m.Name())

	if config.GetBoolEnv("WARM_EV_ITEMS_ON_START", true) {
		go func() {
			if err := m.resolver.WarmKnownEvItems(ctx); err != nil {
				slog.ErrorContext(ctx, "Startup EV item warm failed", "error", err)
			}
		}()
	}

	schedule := config.GetEnv("EV_ITEM_REWARM_SCHEDULE", "0 4 * * *")
	m.cron = cron.New()
	if _, err := m.cron.AddFunc(schedule, func() {
		if err := m.resolver.RewarmKnownEvItems(ctx); err != nil {
			slog.ErrorContext(ctx, "Scheduled EV item re-warm failed", "error", err)
			return
		}
		slog.InfoContext(ctx, "Scheduled EV item re-warm completed")
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to schedule EV item re-warm", "schedule", schedule, "error", err)
		return
	}
	m.cron.Start()

	go func() {
		select {
		case <-ctx.Done():
		case <-m.StopChannel():
		}
		m.cron.Stop()
	}()
}

// Stop gracefully stops the module and its scheduled tasks
func (m *Module) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
	m.BaseModule.Stop()
}
