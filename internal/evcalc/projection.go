package evcalc

// NatureMultiplier resolves the multiplier a nature applies to a stat:
// 1.1 for the increased stat, 0.9 for the decreased stat, 1.0 otherwise.
// A nature whose increased and decreased stats coincide is neutral.
func NatureMultiplier(nature NatureEffect, stat StatKey) float64 {
	if nature.IncreasedStat != nil && nature.DecreasedStat != nil &&
		*nature.IncreasedStat == *nature.DecreasedStat {
		return 1.0
	}
	if nature.IncreasedStat != nil && *nature.IncreasedStat == stat {
		return 1.1
	}
	if nature.DecreasedStat != nil && *nature.DecreasedStat == stat {
		return 0.9
	}
	return 1.0
}

// ProjectHP computes the displayed HP stat at a level.
// floor((2*base + iv + floor(ev/4)) * level / 100) + level + 10
func ProjectHP(base, iv, ev, level int) int {
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// ProjectStat computes a displayed non-HP stat at a level.
// floor(floor((2*base + iv + floor(ev/4)) * level / 100 + 5) * natureMultiplier)
func ProjectStat(base, iv, ev, level int, natureMultiplier float64) int {
	preNature := (2*base+iv+ev/4)*level/100 + 5
	return int(float64(preNature) * natureMultiplier)
}

// ProjectAll computes all six displayed stats. It is display-only and
// never persisted.
func ProjectAll(base, ivs, evs StatBlock, level int, nature NatureEffect) StatBlock {
	projected := StatBlock{
		HP: ProjectHP(base.HP, ivs.HP, evs.HP, level),
	}
	for _, key := range StatKeys {
		if key == StatHP {
			continue
		}
		multiplier := NatureMultiplier(nature, key)
		projected = projected.With(key,
			ProjectStat(base.Get(key), ivs.Get(key), evs.Get(key), level, multiplier))
	}
	return projected
}
