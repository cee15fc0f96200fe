package dto

import (
	"go-evkeeper/internal/evcalc"
	"go-evkeeper/internal/pokemon/models"
)

// CreatePokemonRequest carries the fields for a new trained Pokemon
type CreatePokemonRequest struct {
	Name          string            `json:"name" validate:"required,max=100" minLength:"1" maxLength:"100" description:"Nickname or display name" example:"Sparky"`
	SpeciesNumber int               `json:"speciesNumber" validate:"required,min=1" minimum:"1" description:"National dex species number" example:"25"`
	Description   string            `json:"description,omitempty" validate:"max=1000" maxLength:"1000" description:"Free-form notes"`
	Level         int               `json:"level" validate:"required,min=1,max=100" minimum:"1" maximum:"100" description:"Current level" example:"50"`
	Nature        string            `json:"nature,omitempty" validate:"max=50" maxLength:"50" description:"Nature name" example:"adamant"`
	Ability       string            `json:"ability,omitempty" validate:"max=50" maxLength:"50" description:"Ability name"`
	HeldItem      string            `json:"heldItem,omitempty" validate:"max=50" maxLength:"50" description:"Held item name" example:"power-bracer"`
	Moves         []string          `json:"moves,omitempty" validate:"max=4,dive,max=50" maxItems:"4" description:"Up to four moves"`
	IVs           *models.IVBlock   `json:"ivs,omitempty" description:"Known individual values, 0-31 per stat"`
	EVs           *evcalc.StatBlock `json:"evs,omitempty" description:"Starting effort values; zero when omitted"`
}

// UpdatePokemonRequest carries a partial update; nil fields are left
// unchanged.
type UpdatePokemonRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1,max=100" minLength:"1" maxLength:"100"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=1000" maxLength:"1000"`
	Level       *int              `json:"level,omitempty" validate:"omitempty,min=1,max=100" minimum:"1" maximum:"100"`
	Nature      *string           `json:"nature,omitempty" validate:"omitempty,max=50" maxLength:"50"`
	Ability     *string           `json:"ability,omitempty" validate:"omitempty,max=50" maxLength:"50"`
	HeldItem    *string           `json:"heldItem,omitempty" validate:"omitempty,max=50" maxLength:"50"`
	Moves       *[]string         `json:"moves,omitempty" validate:"omitempty,max=4,dive,max=50" maxItems:"4"`
	IVs         *models.IVBlock   `json:"ivs,omitempty"`
	EVs         *evcalc.StatBlock `json:"evs,omitempty"`
}

// ApplyItemRequest names the item to apply and how many times
type ApplyItemRequest struct {
	ItemName string `json:"itemName" validate:"required,max=100" minLength:"1" maxLength:"100" description:"Item name; case and spacing insensitive" example:"protein"`
	Quantity int    `json:"quantity,omitempty" validate:"omitempty,min=1" minimum:"1" default:"1" description:"Number of uses" example:"1"`
}

// CreatePokemonInput represents the create request (Huma wrapper)
type CreatePokemonInput struct {
	Body CreatePokemonRequest
}

// ListPokemonInput represents the list request (no parameters needed)
type ListPokemonInput struct{}

// GetPokemonInput represents a single-record request
type GetPokemonInput struct {
	PokemonID string `path:"pokemon_id" format:"uuid" description:"Trained Pokemon ID"`
}

// UpdatePokemonInput represents the update request
type UpdatePokemonInput struct {
	PokemonID string `path:"pokemon_id" format:"uuid" description:"Trained Pokemon ID"`
	Body      UpdatePokemonRequest
}

// DeletePokemonInput represents the delete request
type DeletePokemonInput struct {
	PokemonID string `path:"pokemon_id" format:"uuid" description:"Trained Pokemon ID"`
}

// ApplyItemInput represents the apply-item request
type ApplyItemInput struct {
	PokemonID string `path:"pokemon_id" format:"uuid" description:"Trained Pokemon ID"`
	Body      ApplyItemRequest
}

// GetProjectedStatsInput represents the projected-stats request
type GetProjectedStatsInput struct {
	PokemonID string `path:"pokemon_id" format:"uuid" description:"Trained Pokemon ID"`
}
