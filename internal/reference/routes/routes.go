package routes

import (
	"context"
	"errors"

	"go-evkeeper/internal/evcalc"
	"go-evkeeper/internal/reference/dto"
	"go-evkeeper/internal/reference/services"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the reference routes module
type Module struct {
	resolver *services.Resolver
}

// NewModule creates a new reference routes module
func NewModule(resolver *services.Resolver) *Module {
	return &Module{
		resolver: resolver,
	}
}

// RegisterUnifiedRoutes registers all reference routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	// Nature table endpoint
	huma.Register(api, huma.Operation{
		OperationID: "reference-list-natures",
		Method:      "GET",
		Path:        basePath + "/natures",
		Summary:     "List Natures",
		Description: "Retrieve all natures with their stat modifiers, sorted by name. Data is fetched from PokeAPI once and cached.",
		Tags:        []string{"Reference"},
	}, func(ctx context.Context, input *dto.ListNaturesInput) (*dto.NaturesOutput, error) {
		return m.listNatures(ctx)
	})

	// Species list endpoint
	huma.Register(api, huma.Operation{
		OperationID: "reference-list-species",
		Method:      "GET",
		Path:        basePath + "/pokemon-species",
		Summary:     "List Pokemon Species",
		Description: "Retrieve the full species list (name and national dex number), sorted by species number.",
		Tags:        []string{"Reference"},
	}, func(ctx context.Context, input *dto.ListSpeciesInput) (*dto.SpeciesListOutput, error) {
		return m.listSpecies(ctx)
	})

	// Sprite URL endpoint
	huma.Register(api, huma.Operation{
		OperationID: "reference-get-sprite",
		Method:      "GET",
		Path:        basePath + "/pokemon-sprite/{species_number}",
		Summary:     "Get Species Sprite URL",
		Description: "Resolve the front sprite URL for a species. The URL is derived from the species number without calling PokeAPI and is not verified to exist.",
		Tags:        []string{"Reference"},
	}, func(ctx context.Context, input *dto.GetSpriteInput) (*dto.SpriteOutput, error) {
		return m.getSprite(ctx, input)
	})

	// Item EV effect endpoint
	huma.Register(api, huma.Operation{
		OperationID: "reference-get-item-ev-effect",
		Method:      "GET",
		Path:        basePath + "/items/{item_name}/ev-effect",
		Summary:     "Get Item EV Effect",
		Description: "Resolve an item's effect on effort values. Only allowlisted items have an effect; everything else resolves to kind \"none\". Upstream metadata is attached when PokeAPI can resolve the item.",
		Tags:        []string{"Reference"},
	}, func(ctx context.Context, input *dto.GetItemEvEffectInput) (*dto.ItemEvEffectOutput, error) {
		return m.getItemEvEffect(ctx, input)
	})

	// Cache warm endpoint
	huma.Register(api, huma.Operation{
		OperationID: "reference-warm-ev-items",
		Method:      "POST",
		Path:        basePath + "/ev-items/warm-cache",
		Summary:     "Warm EV Item Cache",
		Description: "Fetch the fixed EV item allowlist into the cache tiers so later item lookups can be served without PokeAPI. Runs at most once per process; repeat calls return the first run's outcome.",
		Tags:        []string{"Reference"},
	}, func(ctx context.Context, input *dto.WarmCacheInput) (*dto.WarmCacheOutput, error) {
		return m.warmEvItems(ctx)
	})

	// Status endpoint (public, no auth required)
	huma.Register(api, huma.Operation{
		OperationID: "reference-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get reference module status",
		Description: "Returns the health status of the reference module",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{
			Module: "reference",
			Status: "healthy",
		}}, nil
	})
}

// listNatures handles the nature table request
func (m *Module) listNatures(ctx context.Context) (*dto.NaturesOutput, error) {
	natures, err := m.resolver.GetNatureTable(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("Failed to retrieve natures from PokeAPI", err)
	}

	body := make([]dto.Nature, 0, len(natures))
	for _, n := range natures {
		body = append(body, dto.Nature{
			Name:          n.Name,
			IncreasedStat: statKeyString(n.IncreasedStat),
			DecreasedStat: statKeyString(n.DecreasedStat),
		})
	}
	return &dto.NaturesOutput{Body: body}, nil
}

// listSpecies handles the species list request
func (m *Module) listSpecies(ctx context.Context) (*dto.SpeciesListOutput, error) {
	list, err := m.resolver.GetSpeciesList(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("Failed to retrieve species list from PokeAPI", err)
	}

	body := make([]dto.SpeciesListEntry, 0, len(list))
	for _, entry := range list {
		body = append(body, dto.SpeciesListEntry{
			Name:          entry.Name,
			SpeciesNumber: entry.SpeciesNumber,
		})
	}
	return &dto.SpeciesListOutput{Body: body}, nil
}

// getSprite handles the sprite URL request
func (m *Module) getSprite(ctx context.Context, input *dto.GetSpriteInput) (*dto.SpriteOutput, error) {
	url, err := m.resolver.GetSpeciesSpriteURL(ctx, input.SpeciesNumber)
	if err != nil {
		if errors.Is(err, services.ErrOutOfRange) {
			return nil, huma.Error404NotFound("No species with that number exists")
		}
		return nil, huma.Error502BadGateway("Failed to resolve species sprite", err)
	}

	return &dto.SpriteOutput{Body: dto.SpriteInfo{
		SpeciesNumber: input.SpeciesNumber,
		SpriteURL:     url,
	}}, nil
}

// getItemEvEffect handles the item EV effect request. The effect comes
// from the local allowlist; upstream metadata is best effort and its
// absence never fails the request.
func (m *Module) getItemEvEffect(ctx context.Context, input *dto.GetItemEvEffectInput) (*dto.ItemEvEffectOutput, error) {
	normalized := evcalc.NormalizeItemName(input.ItemName)
	if normalized == "" {
		return nil, huma.Error400BadRequest("Item name must not be empty")
	}

	body := dto.ItemEvEffect{
		Name:   normalized,
		Effect: evcalc.EffectForItem(normalized),
	}

	if item, err := m.resolver.GetItem(ctx, normalized, true); err == nil {
		cost := item.Cost
		category := item.Category.Name
		body.Cost = &cost
		if category != "" {
			body.Category = &category
		}
	}

	return &dto.ItemEvEffectOutput{Body: body}, nil
}

// warmEvItems handles the cache warm request
func (m *Module) warmEvItems(ctx context.Context) (*dto.WarmCacheOutput, error) {
	if err := m.resolver.WarmKnownEvItems(ctx); err != nil {
		return nil, huma.Error503ServiceUnavailable("EV item cache warm failed", err)
	}

	return &dto.WarmCacheOutput{Body: dto.WarmCacheResult{
		Status:      "warmed",
		ItemsWarmed: len(evcalc.KnownEvItemNames()),
	}}, nil
}

func statKeyString(key *evcalc.StatKey) *string {
	if key == nil {
		return nil
	}
	s := string(*key)
	return &s
}
