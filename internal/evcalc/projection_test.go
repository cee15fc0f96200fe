package evcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func statPtr(k StatKey) *StatKey { return &k }

func TestNatureMultiplier(t *testing.T) {
	adamant := NatureEffect{
		Name:          "adamant",
		IncreasedStat: statPtr(StatAttack),
		DecreasedStat: statPtr(StatSpecialAttack),
	}

	assert.Equal(t, 1.1, NatureMultiplier(adamant, StatAttack))
	assert.Equal(t, 0.9, NatureMultiplier(adamant, StatSpecialAttack))
	assert.Equal(t, 1.0, NatureMultiplier(adamant, StatSpeed))
}

func TestNatureMultiplierNeutral(t *testing.T) {
	hardy := NatureEffect{Name: "hardy"}
	for _, key := range StatKeys {
		assert.Equal(t, 1.0, NatureMultiplier(hardy, key))
	}

	// Degenerate entry with increased == decreased is treated as neutral
	weird := NatureEffect{
		Name:          "weird",
		IncreasedStat: statPtr(StatAttack),
		DecreasedStat: statPtr(StatAttack),
	}
	assert.Equal(t, 1.0, NatureMultiplier(weird, StatAttack))
}

func TestProjectHP(t *testing.T) {
	// Garchomp HP: base 108, 31 IV, 252 EV, level 100
	assert.Equal(t, 420, ProjectHP(108, 31, 252, 100))

	// Level 50
	assert.Equal(t, 215, ProjectHP(108, 31, 252, 50))

	// Zero IV and EV
	assert.Equal(t, 326, ProjectHP(108, 0, 0, 100))
}

func TestProjectStat(t *testing.T) {
	// Garchomp Attack: base 130, 31 IV, 252 EV, level 100
	assert.Equal(t, 359, ProjectStat(130, 31, 252, 100, 1.0))
	assert.Equal(t, 394, ProjectStat(130, 31, 252, 100, 1.1))
	assert.Equal(t, 323, ProjectStat(130, 31, 252, 100, 0.9))
}

func TestProjectStatFloorsAfterNature(t *testing.T) {
	// preNature = (2*100+0+0)*100/100 + 5 = 205; 205*1.1 = 225.5 -> 225
	assert.Equal(t, 225, ProjectStat(100, 0, 0, 100, 1.1))
}

func TestProjectAll(t *testing.T) {
	base := StatBlock{HP: 108, Attack: 130, Defense: 95, SpecialAttack: 80, SpecialDefense: 85, Speed: 102}
	ivs := StatBlock{HP: 31, Attack: 31, Defense: 31, SpecialAttack: 31, SpecialDefense: 31, Speed: 31}
	evs := StatBlock{HP: 252, Attack: 252, Speed: 4}
	jolly := NatureEffect{
		Name:          "jolly",
		IncreasedStat: statPtr(StatSpeed),
		DecreasedStat: statPtr(StatSpecialAttack),
	}

	projected := ProjectAll(base, ivs, evs, 100, jolly)

	assert.Equal(t, 420, projected.HP)
	assert.Equal(t, 359, projected.Attack)
	assert.Equal(t, 265, projected.Speed) // floor(241 * 1.1)
	assert.Equal(t, 176, projected.SpecialAttack) // floor(196 * 0.9)
}
