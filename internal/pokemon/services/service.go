package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go-evkeeper/internal/evcalc"
	"go-evkeeper/internal/pokemon/dto"
	"go-evkeeper/internal/pokemon/models"
	refmodels "go-evkeeper/internal/reference/models"
	"go-evkeeper/pkg/pokeapi"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// pokemonRepository abstracts the persistence layer for testing
type pokemonRepository interface {
	GetByID(ctx context.Context, id string) (*models.TrainedPokemon, error)
	List(ctx context.Context) ([]models.TrainedPokemon, error)
	Create(ctx context.Context, pokemon *models.TrainedPokemon) error
	Update(ctx context.Context, pokemon *models.TrainedPokemon) error
	Delete(ctx context.Context, id string) error
}

// referenceResolver is the slice of the reference module this service
// depends on
type referenceResolver interface {
	GetSpecies(ctx context.Context, n int) (refmodels.SpeciesRecord, error)
	GetItem(ctx context.Context, name string, allowNetwork bool) (pokeapi.ItemResponse, error)
	GetNatureTable(ctx context.Context) ([]evcalc.NatureEffect, error)
}

// Service implements trained Pokemon business logic
type Service struct {
	repo     pokemonRepository
	resolver referenceResolver
}

// NewService creates a new trained Pokemon service
func NewService(repo pokemonRepository, resolver referenceResolver) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
	}
}

// Create validates and persists a new trained Pokemon. The species
// number must resolve against the reference tier.
func (s *Service) Create(ctx context.Context, req *dto.CreatePokemonRequest) (*models.TrainedPokemon, error) {
	if err := dto.ValidateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.resolver.GetSpecies(ctx, req.SpeciesNumber); err != nil {
		return nil, err
	}

	pokemon := &models.TrainedPokemon{
		ID:            uuid.New().String(),
		Name:          req.Name,
		SpeciesNumber: req.SpeciesNumber,
		Description:   req.Description,
		Level:         req.Level,
		Nature:        strings.ToLower(strings.TrimSpace(req.Nature)),
		Ability:       req.Ability,
		HeldItem:      evcalc.NormalizeItemName(req.HeldItem),
		Moves:         req.Moves,
	}

	if req.IVs != nil {
		if err := validateIVs(*req.IVs); err != nil {
			return nil, err
		}
		pokemon.IVs = *req.IVs
	}
	if req.EVs != nil {
		if err := req.EVs.ValidateEVs(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		pokemon.EVs = *req.EVs
	}

	if err := s.repo.Create(ctx, pokemon); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Trained Pokemon created",
		"id", pokemon.ID, "species", pokemon.SpeciesNumber, "name", pokemon.Name)

	return pokemon, nil
}

// Get returns a trained Pokemon with its species reference data.
// Reference resolution failures degrade to a nil species summary.
func (s *Service) Get(ctx context.Context, id string) (*models.TrainedPokemon, *refmodels.SpeciesRecord, error) {
	pokemon, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	species, err := s.resolver.GetSpecies(ctx, pokemon.SpeciesNumber)
	if err != nil {
		slog.WarnContext(ctx, "Species enrichment unavailable",
			"id", id, "species", pokemon.SpeciesNumber, "error", err)
		return pokemon, nil, nil
	}

	return pokemon, &species, nil
}

// List returns all trained Pokemon
func (s *Service) List(ctx context.Context) ([]models.TrainedPokemon, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to a trained Pokemon
func (s *Service) Update(ctx context.Context, id string, req *dto.UpdatePokemonRequest) (*models.TrainedPokemon, error) {
	if err := dto.ValidateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pokemon, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pokemon.Name = *req.Name
	}
	if req.Description != nil {
		pokemon.Description = *req.Description
	}
	if req.Level != nil {
		pokemon.Level = *req.Level
	}
	if req.Nature != nil {
		pokemon.Nature = strings.ToLower(strings.TrimSpace(*req.Nature))
	}
	if req.Ability != nil {
		pokemon.Ability = *req.Ability
	}
	if req.HeldItem != nil {
		pokemon.HeldItem = evcalc.NormalizeItemName(*req.HeldItem)
	}
	if req.Moves != nil {
		pokemon.Moves = *req.Moves
	}
	if req.IVs != nil {
		if err := validateIVs(*req.IVs); err != nil {
			return nil, err
		}
		pokemon.IVs = *req.IVs
	}
	if req.EVs != nil {
		if err := req.EVs.ValidateEVs(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		pokemon.EVs = *req.EVs
	}

	if err := s.repo.Update(ctx, pokemon); err != nil {
		return nil, mapRepoError(err)
	}

	return pokemon, nil
}

// Delete removes a trained Pokemon
func (s *Service) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.repo.Delete(ctx, id))
}

// ApplyItem applies a use item's EV effect to a trained Pokemon and
// persists the result. The item must be present in the reference item
// cache, which the reference module warms at startup.
func (s *Service) ApplyItem(ctx context.Context, id, itemName string, quantity int) (*models.TrainedPokemon, *evcalc.ApplyResult, error) {
	pokemon, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	normalized := evcalc.NormalizeItemName(itemName)
	effect := evcalc.EffectForItem(normalized)

	if effect.Kind != evcalc.EffectNone {
		if _, err := s.resolver.GetItem(ctx, normalized, false); err != nil {
			return nil, nil, err
		}
	}

	result, err := evcalc.ApplyItemEffect(pokemon.EVs, effect, quantity)
	if err != nil {
		return nil, nil, err
	}

	pokemon.EVs = result.EVs
	if err := s.repo.Update(ctx, pokemon); err != nil {
		return nil, nil, mapRepoError(err)
	}

	slog.InfoContext(ctx, "Item applied",
		"id", id, "item", normalized, "quantity", quantity,
		"applied", result.Applied, "overflow", result.Overflow)

	return pokemon, &result, nil
}

// ProjectedStats computes the displayed stats for a trained Pokemon.
// All six IVs must be known and the nature must resolve against the
// reference nature table.
func (s *Service) ProjectedStats(ctx context.Context, id string) (*models.TrainedPokemon, evcalc.StatBlock, error) {
	pokemon, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, evcalc.StatBlock{}, err
	}

	if !pokemon.IVs.Complete() {
		return nil, evcalc.StatBlock{}, fmt.Errorf("%w: not all IVs are known", evcalc.ErrProjectionUnavailable)
	}
	if pokemon.Nature == "" {
		return nil, evcalc.StatBlock{}, fmt.Errorf("%w: no nature set", evcalc.ErrProjectionUnavailable)
	}

	nature, err := s.lookupNature(ctx, pokemon.Nature)
	if err != nil {
		return nil, evcalc.StatBlock{}, err
	}

	species, err := s.resolver.GetSpecies(ctx, pokemon.SpeciesNumber)
	if err != nil {
		return nil, evcalc.StatBlock{}, err
	}

	projected := evcalc.ProjectAll(species.BaseStats, pokemon.IVs.ToStatBlock(), pokemon.EVs, pokemon.Level, nature)
	return pokemon, projected, nil
}

func (s *Service) lookupNature(ctx context.Context, name string) (evcalc.NatureEffect, error) {
	natures, err := s.resolver.GetNatureTable(ctx)
	if err != nil {
		return evcalc.NatureEffect{}, err
	}
	for _, nature := range natures {
		if nature.Name == name {
			return nature, nil
		}
	}
	return evcalc.NatureEffect{}, fmt.Errorf("%w: unknown nature %q", evcalc.ErrProjectionUnavailable, name)
}

func (s *Service) getExisting(ctx context.Context, id string) (*models.TrainedPokemon, error) {
	pokemon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return pokemon, nil
}

func validateIVs(ivs models.IVBlock) error {
	for _, key := range evcalc.StatKeys {
		if iv := ivs.Get(key); iv != nil && (*iv < 0 || *iv > 31) {
			return fmt.Errorf("%w: IV for %s must be between 0 and 31", ErrInvalidInput, key)
		}
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
