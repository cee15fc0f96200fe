package dto

import (
	"go-evkeeper/internal/evcalc"
	"go-evkeeper/internal/pokemon/models"
)

// SpeciesSummary carries the reference data attached to a trained
// Pokemon when the species could be resolved
type SpeciesSummary struct {
	SpeciesNumber int              `json:"speciesNumber" example:"25"`
	Types         []string         `json:"types" example:"electric"`
	SpriteURL     *string          `json:"spriteUrl,omitempty"`
	BaseStats     evcalc.StatBlock `json:"baseStats"`
	EVYield       evcalc.StatBlock `json:"evYield" description:"EVs granted for defeating this species"`
}

// PokemonDetail is a trained Pokemon enriched with species reference
// data. Species is nil when the reference tier could not resolve it.
type PokemonDetail struct {
	models.TrainedPokemon
	Species      *SpeciesSummary `json:"species,omitempty"`
	RemainingEVs int             `json:"remainingEvs" description:"EVs still assignable before the total cap"`
}

// PokemonOutput represents a single trained Pokemon response
type PokemonOutput struct {
	Body PokemonDetail
}

// PokemonListOutput represents the trained Pokemon list response
type PokemonListOutput struct {
	Body []models.TrainedPokemon
}

// ApplyItemResult reports the outcome of applying an item
type ApplyItemResult struct {
	Pokemon  models.TrainedPokemon `json:"pokemon"`
	Applied  int                   `json:"applied" description:"EVs actually applied after caps" example:"10"`
	Overflow int                   `json:"overflow" description:"Requested EVs that could not be applied" example:"0"`
	Warnings []string              `json:"warnings,omitempty"`
}

// ApplyItemOutput represents an apply-item response
type ApplyItemOutput struct {
	Body ApplyItemResult
}

// ProjectedStats carries the display stats computed for a trained
// Pokemon at its current level
type ProjectedStats struct {
	Level  int              `json:"level" example:"50"`
	Nature string           `json:"nature" example:"adamant"`
	Stats  evcalc.StatBlock `json:"stats"`
}

// ProjectedStatsOutput represents a projected-stats response
type ProjectedStatsOutput struct {
	Body ProjectedStats
}

// StatusResponse represents the pokemon module health status
type StatusResponse struct {
	Module  string `json:"module" example:"pokemon"`
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty"`
}

// StatusOutput represents a module status response
type StatusOutput struct {
	Body StatusResponse
}
