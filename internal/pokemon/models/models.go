package models

import (
	"time"

	"go-evkeeper/internal/evcalc"
)

// TrainedPokemonCollection is the MongoDB collection name
const TrainedPokemonCollection = "trained_pokemon"

// IVBlock holds the six individual values. Fields are pointers because
// IVs may be unknown; stat projection needs all six.
type IVBlock struct {
	HP             *int `json:"hp,omitempty" bson:"hp,omitempty"`
	Attack         *int `json:"attack,omitempty" bson:"attack,omitempty"`
	Defense        *int `json:"defense,omitempty" bson:"defense,omitempty"`
	SpecialAttack  *int `json:"specialAttack,omitempty" bson:"special_attack,omitempty"`
	SpecialDefense *int `json:"specialDefense,omitempty" bson:"special_defense,omitempty"`
	Speed          *int `json:"speed,omitempty" bson:"speed,omitempty"`
}

// Get returns the IV for a stat key, or nil when unknown
func (b IVBlock) Get(key evcalc.StatKey) *int {
	switch key {
	case evcalc.StatHP:
		return b.HP
	case evcalc.StatAttack:
		return b.Attack
	case evcalc.StatDefense:
		return b.Defense
	case evcalc.StatSpecialAttack:
		return b.SpecialAttack
	case evcalc.StatSpecialDefense:
		return b.SpecialDefense
	case evcalc.StatSpeed:
		return b.Speed
	}
	return nil
}

// Complete reports whether all six IVs are known
func (b IVBlock) Complete() bool {
	for _, key := range evcalc.StatKeys {
		if b.Get(key) == nil {
			return false
		}
	}
	return true
}

// ToStatBlock converts known IVs into a StatBlock. Call only when
// Complete() is true; unknown stats come out as zero.
func (b IVBlock) ToStatBlock() evcalc.StatBlock {
	var block evcalc.StatBlock
	for _, key := range evcalc.StatKeys {
		if iv := b.Get(key); iv != nil {
			block = block.With(key, *iv)
		}
	}
	return block
}

// TrainedPokemon is one tracked Pokemon and its EV training progress
type TrainedPokemon struct {
	ID            string           `json:"id" bson:"_id"`
	Name          string           `json:"name" bson:"name"`
	SpeciesNumber int              `json:"speciesNumber" bson:"species_number"`
	Description   string           `json:"description,omitempty" bson:"description,omitempty"`
	Level         int              `json:"level" bson:"level"`
	Nature        string           `json:"nature,omitempty" bson:"nature,omitempty"`
	Ability       string           `json:"ability,omitempty" bson:"ability,omitempty"`
	HeldItem      string           `json:"heldItem,omitempty" bson:"held_item,omitempty"`
	Moves         []string         `json:"moves,omitempty" bson:"moves,omitempty"`
	IVs           IVBlock          `json:"ivs" bson:"ivs"`
	EVs           evcalc.StatBlock `json:"evs" bson:"evs"`
	CreatedAt     time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" bson:"updated_at"`
}
