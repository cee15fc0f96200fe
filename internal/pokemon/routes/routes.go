package routes

import (
	"context"
	"errors"

	"go-evkeeper/internal/evcalc"
	"go-evkeeper/internal/pokemon/dto"
	"go-evkeeper/internal/pokemon/models"
	"go-evkeeper/internal/pokemon/services"
	refmodels "go-evkeeper/internal/reference/models"
	refservices "go-evkeeper/internal/reference/services"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the pokemon routes module
type Module struct {
	service *services.Service
}

// NewModule creates a new pokemon routes module
func NewModule(service *services.Service) *Module {
	return &Module{
		service: service,
	}
}

// RegisterUnifiedRoutes registers all pokemon routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	// List endpoint
	huma.Register(api, huma.Operation{
		OperationID: "pokemon-list",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List Trained Pokemon",
		Description: "Retrieve all trained Pokemon sorted by creation time.",
		Tags:        []string{"Pokemon"},
	}, func(ctx context.Context, input *dto.ListPokemonInput) (*dto.PokemonListOutput, error) {
		return m.listPokemon(ctx)
	})

	// Create endpoint
	huma.Register(api, huma.Operation{
		OperationID:   "pokemon-create",
		Method:        "POST",
		Path:          basePath,
		Summary:       "Create Trained Pokemon",
		Description:   "Create a trained Pokemon record. The species number must resolve against the reference data.",
		Tags:          []string{"Pokemon"},
		DefaultStatus: 201,
	}, func(ctx context.Context, input *dto.CreatePokemonInput) (*dto.PokemonOutput, error) {
		return m.createPokemon(ctx, input)
	})

	// Get endpoint
	huma.Register(api, huma.Operation{
		OperationID: "pokemon-get",
		Method:      "GET",
		Path:        basePath + "/{pokemon_id}",
		Summary:     "Get Trained Pokemon",
		Description: "Retrieve one trained Pokemon enriched with species reference data when available.",
		Tags:        []string{"Pokemon"},
	}, func(ctx context.Context, input *dto.GetPokemonInput) (*dto.PokemonOutput, error) {
		return m.getPokemon(ctx, input)
	})

	// Update endpoint
	huma.Register(api, huma.Operation{
		OperationID: "pokemon-update",
		Method:      "PATCH",
		Path:        basePath + "/{pokemon_id}",
		Summary:     "Update Trained Pokemon",
		Description: "Apply a partial update to a trained Pokemon. Omitted fields are left unchanged.",
		Tags:        []string{"Pokemon"},
	}, func(ctx context.Context, input *dto.UpdatePokemonInput) (*dto.PokemonOutput, error) {
		return m.updatePokemon(ctx, input)
	})

	// Delete endpoint
	huma.Register(api, huma.Operation{
		OperationID:   "pokemon-delete",
		Method:        "DELETE",
		Path:          basePath + "/{pokemon_id}",
		Summary:       "Delete Trained Pokemon",
		Description:   "Remove a trained Pokemon record.",
		Tags:          []string{"Pokemon"},
		DefaultStatus: 204,
	}, func(ctx context.Context, input *dto.DeletePokemonInput) (*struct{}, error) {
		return m.deletePokemon(ctx, input)
	})

	// Apply item endpoint
	huma.Register(api, huma.Operation{
		OperationID: "pokemon-apply-item",
		Method:      "POST",
		Path:        basePath + "/{pokemon_id}/apply-item",
		Summary:     "Apply Item",
		Description: "Apply a use item's EV effect to a trained Pokemon. Amounts past the per-stat or total caps are reported as overflow, never silently applied.",
		Tags:        []string{"Pokemon"},
	}, func(ctx context.Context, input *dto.ApplyItemInput) (*dto.ApplyItemOutput, error) {
		return m.applyItem(ctx, input)
	})

	// Projected stats endpoint
	huma.Register(api, huma.Operation{
		OperationID: "pokemon-projected-stats",
		Method:      "GET",
		Path:        basePath + "/{pokemon_id}/projected-stats",
		Summary:     "Get Projected Stats",
		Description: "Compute the displayed stats for a trained Pokemon at its current level. Requires all six IVs and a recognized nature.",
		Tags:        []string{"Pokemon"},
	}, func(ctx context.Context, input *dto.GetProjectedStatsInput) (*dto.ProjectedStatsOutput, error) {
		return m.getProjectedStats(ctx, input)
	})

	// Status endpoint (public, no auth required)
	huma.Register(api, huma.Operation{
		OperationID: "pokemon-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get pokemon module status",
		Description: "Returns the health status of the pokemon module",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{
			Module: "pokemon",
			Status: "healthy",
		}}, nil
	})
}

// listPokemon handles the list request
func (m *Module) listPokemon(ctx context.Context) (*dto.PokemonListOutput, error) {
	pokemon, err := m.service.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list trained Pokemon", err)
	}
	return &dto.PokemonListOutput{Body: pokemon}, nil
}

// createPokemon handles the create request
func (m *Module) createPokemon(ctx context.Context, input *dto.CreatePokemonInput) (*dto.PokemonOutput, error) {
	pokemon, err := m.service.Create(ctx, &input.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return nil, huma.Error400BadRequest("Invalid trained Pokemon payload", err)
		case errors.Is(err, refservices.ErrOutOfRange):
			return nil, huma.Error400BadRequest("No species with that number exists")
		case errors.Is(err, refservices.ErrUpstreamUnavailable):
			return nil, huma.Error502BadGateway("Species could not be verified against PokeAPI", err)
		default:
			return nil, huma.Error500InternalServerError("Failed to create trained Pokemon", err)
		}
	}
	return &dto.PokemonOutput{Body: detail(pokemon, nil)}, nil
}

// getPokemon handles the single-record request
func (m *Module) getPokemon(ctx context.Context, input *dto.GetPokemonInput) (*dto.PokemonOutput, error) {
	pokemon, species, err := m.service.Get(ctx, input.PokemonID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, huma.Error404NotFound("Trained Pokemon not found")
		}
		return nil, huma.Error500InternalServerError("Failed to retrieve trained Pokemon", err)
	}
	return &dto.PokemonOutput{Body: detail(pokemon, species)}, nil
}

// updatePokemon handles the partial update request
func (m *Module) updatePokemon(ctx context.Context, input *dto.UpdatePokemonInput) (*dto.PokemonOutput, error) {
	pokemon, err := m.service.Update(ctx, input.PokemonID, &input.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return nil, huma.Error404NotFound("Trained Pokemon not found")
		case errors.Is(err, services.ErrInvalidInput):
			return nil, huma.Error400BadRequest("Invalid update payload", err)
		default:
			return nil, huma.Error500InternalServerError("Failed to update trained Pokemon", err)
		}
	}
	return &dto.PokemonOutput{Body: detail(pokemon, nil)}, nil
}

// deletePokemon handles the delete request
func (m *Module) deletePokemon(ctx context.Context, input *dto.DeletePokemonInput) (*struct{}, error) {
	if err := m.service.Delete(ctx, input.PokemonID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, huma.Error404NotFound("Trained Pokemon not found")
		}
		return nil, huma.Error500InternalServerError("Failed to delete trained Pokemon", err)
	}
	return &struct{}{}, nil
}

// applyItem handles the apply-item request
func (m *Module) applyItem(ctx context.Context, input *dto.ApplyItemInput) (*dto.ApplyItemOutput, error) {
	quantity := input.Body.Quantity
	if quantity == 0 {
		quantity = 1
	}

	pokemon, result, err := m.service.ApplyItem(ctx, input.PokemonID, input.Body.ItemName, quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return nil, huma.Error404NotFound("Trained Pokemon not found")
		case errors.Is(err, evcalc.ErrNotEvRelevant):
			return nil, huma.Error400BadRequest("Item has no effect on effort values")
		case errors.Is(err, evcalc.ErrNotUseItem):
			return nil, huma.Error400BadRequest("Item is a held item and cannot be applied directly")
		case errors.Is(err, evcalc.ErrInvalidQuantity):
			return nil, huma.Error400BadRequest("Quantity must be at least 1")
		case errors.Is(err, refservices.ErrNotCached):
			return nil, huma.Error503ServiceUnavailable("Item cache has not been warmed yet", err)
		default:
			return nil, huma.Error500InternalServerError("Failed to apply item", err)
		}
	}

	return &dto.ApplyItemOutput{Body: dto.ApplyItemResult{
		Pokemon:  *pokemon,
		Applied:  result.Applied,
		Overflow: result.Overflow,
		Warnings: result.Warnings,
	}}, nil
}

// getProjectedStats handles the projected-stats request
func (m *Module) getProjectedStats(ctx context.Context, input *dto.GetProjectedStatsInput) (*dto.ProjectedStatsOutput, error) {
	pokemon, stats, err := m.service.ProjectedStats(ctx, input.PokemonID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return nil, huma.Error404NotFound("Trained Pokemon not found")
		case errors.Is(err, evcalc.ErrProjectionUnavailable):
			return nil, huma.Error422UnprocessableEntity("Projected stats are unavailable for this Pokemon", err)
		case errors.Is(err, refservices.ErrUpstreamUnavailable):
			return nil, huma.Error502BadGateway("Species data could not be retrieved from PokeAPI", err)
		default:
			return nil, huma.Error500InternalServerError("Failed to compute projected stats", err)
		}
	}

	return &dto.ProjectedStatsOutput{Body: dto.ProjectedStats{
		Level:  pokemon.Level,
		Nature: pokemon.Nature,
		Stats:  stats,
	}}, nil
}

// detail combines a trained Pokemon with its species reference data
func detail(pokemon *models.TrainedPokemon, species *refmodels.SpeciesRecord) dto.PokemonDetail {
	d := dto.PokemonDetail{
		TrainedPokemon: *pokemon,
		RemainingEVs:   evcalc.TotalCap - pokemon.EVs.Total(),
	}
	if species != nil {
		d.Species = &dto.SpeciesSummary{
			SpeciesNumber: pokemon.SpeciesNumber,
			Types:         species.Types,
			SpriteURL:     species.SpriteURL,
			BaseStats:     species.BaseStats,
			EVYield:       species.EVYield,
		}
	}
	return d
}
