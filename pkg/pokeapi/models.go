package pokeapi

// NamedAPIResource is PokeAPI's ubiquitous {name, url} reference shape
type NamedAPIResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StatValue is one entry of a pokemon's stats array
type StatValue struct {
	BaseStat int              `json:"base_stat"`
	Effort   int              `json:"effort"`
	Stat     NamedAPIResource `json:"stat"`
}

// TypeSlot is one entry of a pokemon's types array, ordered by slot
type TypeSlot struct {
	Slot int              `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

// Sprites carries the subset of sprite URLs we consume
type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// PokemonResponse is the raw payload of GET /api/v2/pokemon/{id}
type PokemonResponse struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Stats   []StatValue `json:"stats"`
	Types   []TypeSlot  `json:"types"`
	Sprites Sprites     `json:"sprites"`
}

// PagedList is the raw payload of the paged list endpoints
// (GET /api/v2/pokemon?limit=N). Count is the authoritative total.
type PagedList struct {
	Count   int                `json:"count"`
	Results []NamedAPIResource `json:"results"`
}

// ItemResponse is the raw payload of GET /api/v2/item/{name}.
// Only the name field participates in any downstream decision; the
// rest is carried for display and kept deliberately shallow.
type ItemResponse struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Cost     int              `json:"cost"`
	Category NamedAPIResource `json:"category"`
}

// NatureResponse is the raw payload of GET /api/v2/nature/{name}
type NatureResponse struct {
	Name          string            `json:"name"`
	IncreasedStat *NamedAPIResource `json:"increased_stat"`
	DecreasedStat *NamedAPIResource `json:"decreased_stat"`
}
