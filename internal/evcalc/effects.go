package evcalc

import "strings"

// EffectKind discriminates the EV-relevant item effect variants
type EffectKind string

const (
	EffectNone                 EffectKind = "none"
	EffectUseAdd               EffectKind = "use_add"
	EffectUseSubtract          EffectKind = "use_subtract"
	EffectUseResetAll          EffectKind = "use_reset_all"
	EffectHeldBattleMultiplier EffectKind = "held_battle_multiplier"
	EffectHeldBattleBonus      EffectKind = "held_battle_bonus"
)

// ItemEffect describes how an item interacts with EVs
type ItemEffect struct {
	Kind         EffectKind `json:"kind"`
	StatKey      StatKey    `json:"statKey,omitempty"`
	AmountPerUse int        `json:"amountPerUse,omitempty"`
	Multiplier   int        `json:"multiplier,omitempty"`
	AmountPerKo  int        `json:"amountPerKo,omitempty"`
}

// NormalizeItemName lowercases an item name and collapses whitespace
// runs to hyphens, so differently-formatted requests for the same item
// share one identity.
func NormalizeItemName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}

// EV behavior is never inferred from item categories or upstream effect
// text. Only the allowlisted names below are EV-relevant (Gen 9 focus);
// everything else resolves to EffectNone.

// Mochi stat items behave like vitamins (add EVs).
var mochiStats = map[string]StatKey{
	"hp-mochi":     StatHP,
	"muscle-mochi": StatAttack,
	"resist-mochi": StatDefense,
	"genius-mochi": StatSpecialAttack,
	"clever-mochi": StatSpecialDefense,
	"swift-mochi":  StatSpeed,
}

// Vitamins: +10 EV per use.
var vitaminStats = map[string]StatKey{
	"hp-up":   StatHP,
	"protein": StatAttack,
	"iron":    StatDefense,
	"calcium": StatSpecialAttack,
	"zinc":    StatSpecialDefense,
	"carbos":  StatSpeed,
}

// Feathers: +1 EV per use.
var featherStats = map[string]StatKey{
	"health-feather": StatHP,
	"muscle-feather": StatAttack,
	"resist-feather": StatDefense,
	"genius-feather": StatSpecialAttack,
	"clever-feather": StatSpecialDefense,
	"swift-feather":  StatSpeed,
}

// EV-reducing berries: -10 EV per use.
var berryStats = map[string]StatKey{
	"pomeg-berry":  StatHP,
	"kelpsy-berry": StatAttack,
	"qualot-berry": StatDefense,
	"hondew-berry": StatSpecialAttack,
	"grepa-berry":  StatSpecialDefense,
	"tamato-berry": StatSpeed,
}

// Power items: +8 EVs to a specific stat per KO while held (Gen 9).
var powerItemStats = map[string]StatKey{
	"power-weight": StatHP,
	"power-bracer": StatAttack,
	"power-belt":   StatDefense,
	"power-lens":   StatSpecialAttack,
	"power-band":   StatSpecialDefense,
	"power-anklet": StatSpeed,
}

// EffectForItem resolves an item name to its EV effect descriptor.
// Unknown items resolve to EffectNone, never to a guessed effect.
func EffectForItem(name string) ItemEffect {
	n := NormalizeItemName(name)

	// Fresh-Start Mochi (SV DLC): reset all EVs.
	if n == "fresh-start-mochi" {
		return ItemEffect{Kind: EffectUseResetAll}
	}

	if stat, ok := mochiStats[n]; ok {
		return ItemEffect{Kind: EffectUseAdd, StatKey: stat, AmountPerUse: 10}
	}

	if stat, ok := vitaminStats[n]; ok {
		return ItemEffect{Kind: EffectUseAdd, StatKey: stat, AmountPerUse: 10}
	}

	if stat, ok := featherStats[n]; ok {
		return ItemEffect{Kind: EffectUseAdd, StatKey: stat, AmountPerUse: 1}
	}

	if stat, ok := berryStats[n]; ok {
		return ItemEffect{Kind: EffectUseSubtract, StatKey: stat, AmountPerUse: 10}
	}

	// Macho Brace: doubles EV gain from battles.
	if n == "macho-brace" {
		return ItemEffect{Kind: EffectHeldBattleMultiplier, Multiplier: 2}
	}

	if stat, ok := powerItemStats[n]; ok {
		return ItemEffect{Kind: EffectHeldBattleBonus, StatKey: stat, AmountPerKo: 8}
	}

	return ItemEffect{Kind: EffectNone}
}

// KnownEvItemNames returns the fixed allowlist of EV item names used
// for warm-caching, in a stable order.
func KnownEvItemNames() []string {
	return []string{
		// Vitamins
		"hp-up", "protein", "iron", "calcium", "zinc", "carbos",
		// EV reducing berries
		"pomeg-berry", "kelpsy-berry", "qualot-berry", "hondew-berry", "grepa-berry", "tamato-berry",
		// Power items
		"power-weight", "power-bracer", "power-belt", "power-lens", "power-band", "power-anklet",
		// Feathers
		"health-feather", "muscle-feather", "resist-feather", "genius-feather", "clever-feather", "swift-feather",
		// Mochis
		"fresh-start-mochi",
		"hp-mochi", "muscle-mochi", "resist-mochi", "genius-mochi", "clever-mochi", "swift-mochi",
		// Held EV modifiers
		"macho-brace",
	}
}
