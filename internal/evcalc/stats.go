package evcalc

// StatKey identifies one of the six trainable stats
type StatKey string

const (
	StatHP             StatKey = "hp"
	StatAttack         StatKey = "attack"
	StatDefense        StatKey = "defense"
	StatSpecialAttack  StatKey = "specialAttack"
	StatSpecialDefense StatKey = "specialDefense"
	StatSpeed          StatKey = "speed"
)

// StatKeys lists all six stat keys in display order
var StatKeys = []StatKey{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

// Gen 9 EV caps
const (
	PerStatCap = 252
	TotalCap   = 510
)

// StatBlock holds one integer per stat. It is used for base stats,
// EV yields, IVs and EV spreads alike.
type StatBlock struct {
	HP             int `json:"hp" bson:"hp"`
	Attack         int `json:"attack" bson:"attack"`
	Defense        int `json:"defense" bson:"defense"`
	SpecialAttack  int `json:"specialAttack" bson:"special_attack"`
	SpecialDefense int `json:"specialDefense" bson:"special_defense"`
	Speed          int `json:"speed" bson:"speed"`
}

// Get returns the value for a stat key
func (s StatBlock) Get(key StatKey) int {
	switch key {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpecialAttack:
		return s.SpecialAttack
	case StatSpecialDefense:
		return s.SpecialDefense
	case StatSpeed:
		return s.Speed
	}
	return 0
}

// With returns a copy of the block with one stat replaced
func (s StatBlock) With(key StatKey, value int) StatBlock {
	switch key {
	case StatHP:
		s.HP = value
	case StatAttack:
		s.Attack = value
	case StatDefense:
		s.Defense = value
	case StatSpecialAttack:
		s.SpecialAttack = value
	case StatSpecialDefense:
		s.SpecialDefense = value
	case StatSpeed:
		s.Speed = value
	}
	return s
}

// Total returns the sum across all six stats
func (s StatBlock) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// ValidateEVs checks the Gen 9 EV invariants: every stat in [0, 252]
// and the total in [0, 510].
func (s StatBlock) ValidateEVs() error {
	for _, key := range StatKeys {
		v := s.Get(key)
		if v < 0 || v > PerStatCap {
			return ErrCapViolation
		}
	}
	if s.Total() > TotalCap {
		return ErrCapViolation
	}
	return nil
}

// NatureEffect describes a nature's stat modifiers. Both stats nil,
// or increased == decreased, means a neutral nature.
type NatureEffect struct {
	Name          string   `json:"name"`
	IncreasedStat *StatKey `json:"increasedStat"`
	DecreasedStat *StatKey `json:"decreasedStat"`
}
