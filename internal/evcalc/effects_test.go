package evcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeItemName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"protein", "protein"},
		{"Protein", "protein"},
		{"  HP Up  ", "hp-up"},
		{"Fresh Start Mochi", "fresh-start-mochi"},
		{"pomeg-berry", "pomeg-berry"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeItemName(tt.in), "input %q", tt.in)
	}
}

func TestEffectForItem(t *testing.T) {
	tests := []struct {
		name string
		want ItemEffect
	}{
		{"hp-up", ItemEffect{Kind: EffectUseAdd, StatKey: StatHP, AmountPerUse: 10}},
		{"protein", ItemEffect{Kind: EffectUseAdd, StatKey: StatAttack, AmountPerUse: 10}},
		{"carbos", ItemEffect{Kind: EffectUseAdd, StatKey: StatSpeed, AmountPerUse: 10}},
		{"swift-mochi", ItemEffect{Kind: EffectUseAdd, StatKey: StatSpeed, AmountPerUse: 10}},
		{"health-feather", ItemEffect{Kind: EffectUseAdd, StatKey: StatHP, AmountPerUse: 1}},
		{"kelpsy-berry", ItemEffect{Kind: EffectUseSubtract, StatKey: StatAttack, AmountPerUse: 10}},
		{"fresh-start-mochi", ItemEffect{Kind: EffectUseResetAll}},
		{"macho-brace", ItemEffect{Kind: EffectHeldBattleMultiplier, Multiplier: 2}},
		{"power-anklet", ItemEffect{Kind: EffectHeldBattleBonus, StatKey: StatSpeed, AmountPerKo: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectForItem(tt.name))
		})
	}
}

// Unknown items must never resolve to a guessed effect, whatever the
// upstream metadata says about them.
func TestEffectForUnknownItem(t *testing.T) {
	for _, name := range []string{"master-ball", "rare-candy", "leftovers", "", "protein-shake"} {
		assert.Equal(t, EffectNone, EffectForItem(name).Kind, "item %q", name)
	}
}

// Every name on the warm allowlist must resolve to a real effect.
func TestKnownEvItemNamesAllResolve(t *testing.T) {
	for _, name := range KnownEvItemNames() {
		assert.NotEqual(t, EffectNone, EffectForItem(name).Kind, "item %q", name)
	}
}

func TestEffectForItemNormalizesInput(t *testing.T) {
	assert.Equal(t, EffectForItem("protein"), EffectForItem("  Protein "))
	assert.Equal(t, EffectForItem("hp-up"), EffectForItem("HP Up"))
}
