package dto

import "go-evkeeper/internal/evcalc"

// Nature represents one nature with its stat modifiers. Neutral
// natures carry no increased or decreased stat.
type Nature struct {
	Name          string  `json:"name" description:"Nature name" example:"adamant"`
	IncreasedStat *string `json:"increasedStat,omitempty" description:"Stat raised by 10%" example:"attack"`
	DecreasedStat *string `json:"decreasedStat,omitempty" description:"Stat lowered by 10%" example:"specialAttack"`
}

// NaturesOutput represents the nature table response (Huma wrapper)
type NaturesOutput struct {
	Body []Nature `json:"body"`
}

// SpeciesListEntry represents one species in the full species list
type SpeciesListEntry struct {
	Name          string `json:"name" description:"Species name" example:"pikachu"`
	SpeciesNumber int    `json:"speciesNumber" description:"National dex number" example:"25"`
}

// SpeciesListOutput represents the species list response
type SpeciesListOutput struct {
	Body []SpeciesListEntry `json:"body"`
}

// SpriteInfo represents a resolved sprite location for a species
type SpriteInfo struct {
	SpeciesNumber int    `json:"speciesNumber" example:"25"`
	SpriteURL     string `json:"spriteUrl" description:"Front sprite URL; best effort, not verified to exist"`
}

// SpriteOutput represents a sprite lookup response
type SpriteOutput struct {
	Body SpriteInfo `json:"body"`
}

// ItemEvEffect represents an item's resolved EV behavior plus upstream
// metadata when available
type ItemEvEffect struct {
	Name     string            `json:"name" description:"Normalized item name" example:"hp-up"`
	Effect   evcalc.ItemEffect `json:"effect"`
	Cost     *int              `json:"cost,omitempty" description:"Shop cost from PokeAPI, when the item could be resolved"`
	Category *string           `json:"category,omitempty" description:"PokeAPI item category, when the item could be resolved"`
}

// ItemEvEffectOutput represents an item EV effect response
type ItemEvEffectOutput struct {
	Body ItemEvEffect `json:"body"`
}

// WarmCacheResult reports the outcome of an EV item cache warm
type WarmCacheResult struct {
	Status      string `json:"status" example:"warmed"`
	ItemsWarmed int    `json:"itemsWarmed" example:"31"`
}

// WarmCacheOutput represents a warm-cache response
type WarmCacheOutput struct {
	Body WarmCacheResult `json:"body"`
}

// StatusResponse represents the reference module health status
type StatusResponse struct {
	Module  string `json:"module" example:"reference"`
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty"`
}

// StatusOutput represents a module status response
type StatusOutput struct {
	Body StatusResponse `json:"body"`
}
