package models

import "go-evkeeper/internal/evcalc"

// SpeciesRecord is the normalized reference data for one species.
// Immutable once fetched; the durable cache is the source of truth
// across restarts.
type SpeciesRecord struct {
	BaseStats evcalc.StatBlock `json:"baseStats"`
	EVYield   evcalc.StatBlock `json:"evYield"`
	Types     []string         `json:"types"`
	SpriteURL *string          `json:"spriteUrl"`
}

// SpeciesListEntry is one row of the full species list, used for
// client dropdowns so the UI never hits PokeAPI directly.
type SpeciesListEntry struct {
	Name          string `json:"name"`
	SpeciesNumber int    `json:"speciesNumber"`
}
