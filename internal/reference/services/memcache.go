package services

import (
	"sync"

	"go-evkeeper/internal/evcalc"
	"go-evkeeper/internal/reference/models"
	"go-evkeeper/pkg/pokeapi"
)

// processCache is the in-memory cache tier, scoped to one running
// process and consulted before the durable tier. Entries are never
// evicted: reference data is immutable and bounded by the species and
// item universe, so unbounded maps are a deliberate simplification.
type processCache struct {
	mu sync.RWMutex

	species     map[int]models.SpeciesRecord
	sprites     map[int]string
	items       map[string]pokeapi.ItemResponse
	natures     []evcalc.NatureEffect
	speciesList []models.SpeciesListEntry
	count       int
}

func newProcessCache() *processCache {
	return &processCache{
		species: make(map[int]models.SpeciesRecord),
		sprites: make(map[int]string),
		items:   make(map[string]pokeapi.ItemResponse),
	}
}

func (c *processCache) Species(n int) (models.SpeciesRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.species[n]
	return rec, ok
}

func (c *processCache) SetSpecies(n int, rec models.SpeciesRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.species[n] = rec
}

func (c *processCache) Sprite(n int) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.sprites[n]
	return url, ok
}

func (c *processCache) SetSprite(n int, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sprites[n] = url
}

func (c *processCache) Item(name string) (pokeapi.ItemResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[name]
	return item, ok
}

func (c *processCache) SetItem(name string, item pokeapi.ItemResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[name] = item
}

func (c *processCache) Natures() ([]evcalc.NatureEffect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.natures, c.natures != nil
}

func (c *processCache) SetNatures(natures []evcalc.NatureEffect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.natures = natures
}

func (c *processCache) SpeciesList() ([]models.SpeciesListEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.speciesList, c.speciesList != nil
}

func (c *processCache) SetSpeciesList(list []models.SpeciesListEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speciesList = list
}

func (c *processCache) Count() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count, c.count > 0
}

func (c *processCache) SetCount(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = count
}
