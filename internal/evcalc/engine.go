package evcalc

import "fmt"

// ApplyResult is the outcome of applying a use-item effect to an EV
// spread. A non-empty Warnings slice signals cap-limited partial
// application, never failure.
type ApplyResult struct {
	EVs      StatBlock
	Applied  int
	Overflow int
	Warnings []string
}

// ApplyItemEffect applies a single use-item effect to the given EV
// spread and returns the new spread. The input is never mutated; the
// result is validated against the Gen 9 caps before it is returned, so
// a successful result always satisfies the EV invariants.
func ApplyItemEffect(current StatBlock, effect ItemEffect, quantity int) (ApplyResult, error) {
	if quantity < 1 {
		return ApplyResult{}, ErrInvalidQuantity
	}

	var result ApplyResult

	switch effect.Kind {
	case EffectUseResetAll:
		result.EVs = StatBlock{}

	case EffectUseAdd:
		requested := effect.AmountPerUse * quantity
		currentStat := current.Get(effect.StatKey)

		remainingStat := PerStatCap - currentStat
		remainingTotal := TotalCap - current.Total()

		applied := min(requested, remainingStat, remainingTotal)
		if applied < 0 {
			applied = 0
		}

		result.EVs = current.With(effect.StatKey, currentStat+applied)
		result.Applied = applied
		result.Overflow = requested - applied
		if result.Overflow > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not apply %d EV(s) due to caps.", result.Overflow))
		}

	case EffectUseSubtract:
		requested := effect.AmountPerUse * quantity
		currentStat := current.Get(effect.StatKey)

		applied := min(requested, currentStat)
		if applied < 0 {
			applied = 0
		}

		result.EVs = current.With(effect.StatKey, currentStat-applied)
		result.Applied = applied
		result.Overflow = requested - applied
		if result.Overflow > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not subtract %d EV(s) because the stat was already too low.", result.Overflow))
		}

	case EffectHeldBattleMultiplier, EffectHeldBattleBonus:
		// Held-item effects apply during battles, not through a direct
		// use action; battle simulation is out of scope.
		return ApplyResult{}, ErrNotUseItem

	default:
		return ApplyResult{}, ErrNotEvRelevant
	}

	// Defensive cap check on the computed spread. The caller's state is
	// untouched on failure.
	if err := result.EVs.ValidateEVs(); err != nil {
		return ApplyResult{}, err
	}

	return result, nil
}
