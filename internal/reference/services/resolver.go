package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"go-evkeeper/internal/evcalc"
	"go-evkeeper/internal/reference/models"
	"go-evkeeper/pkg/pokeapi"

	"golang.org/x/sync/singleflight"
)

// Sprite URLs are derivable from the species number alone, so sprite
// lookups never touch PokeAPI. The URL is best-effort and unchecked.
const spriteURLTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"

const natureListLimit = 100

var speciesURLPattern = regexp.MustCompile(`/pokemon/(\d+)/?$`)

// Resolver is the facade over PokeAPI reference data. Every fetch runs
// process cache -> durable cache -> upstream inside a single-flight
// group, so concurrent callers for one resource key share a single
// upstream call and failures are never cached.
type Resolver struct {
	client  pokeapi.Client
	durable DurableStore // nil when the durable tier is unavailable
	mem     *processCache
	group   singleflight.Group

	warmOnce sync.Once
	warmErr  error
}

// NewResolver creates a resolver. durable may be nil; the resolver
// then degrades to the process cache and upstream only.
func NewResolver(client pokeapi.Client, durable DurableStore) *Resolver {
	return &Resolver{
		client:  client,
		durable: durable,
		mem:     newProcessCache(),
	}
}

// GetSpeciesCount returns the authoritative upper bound for valid
// species numbers. Fetched at most once per process; once known it is
// never re-fetched.
func (r *Resolver) GetSpeciesCount(ctx context.Context) (int, error) {
	if count, ok := r.mem.Count(); ok {
		return count, nil
	}

	v, err, _ := r.group.Do("count", func() (any, error) {
		if count, ok := r.mem.Count(); ok {
			return count, nil
		}

		count, err := r.client.GetPokemonCount(ctx)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}

		r.mem.SetCount(count)
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// validateSpeciesNumber checks n against [1, count]
func (r *Resolver) validateSpeciesNumber(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: species number %d", ErrOutOfRange, n)
	}
	count, err := r.GetSpeciesCount(ctx)
	if err != nil {
		return err
	}
	if n > count {
		return fmt.Errorf("%w: species number %d exceeds %d", ErrOutOfRange, n, count)
	}
	return nil
}

// GetSpecies returns the normalized reference record for one species
func (r *Resolver) GetSpecies(ctx context.Context, n int) (models.SpeciesRecord, error) {
	if err := r.validateSpeciesNumber(ctx, n); err != nil {
		return models.SpeciesRecord{}, err
	}

	key := "pokeapi:species:" + strconv.Itoa(n)
	v, err, _ := r.group.Do(key, func() (any, error) {
		if rec, ok := r.mem.Species(n); ok {
			return rec, nil
		}

		var rec models.SpeciesRecord
		if found := r.durableGet(ctx, key, &rec); found {
			r.backfillSpecies(n, rec)
			return rec, nil
		}

		raw, err := r.client.GetPokemon(ctx, n)
		if err != nil {
			return models.SpeciesRecord{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}

		rec = normalizeSpecies(raw)
		r.backfillSpecies(n, rec)
		r.durableSet(ctx, key, rec)
		return rec, nil
	})
	if err != nil {
		return models.SpeciesRecord{}, err
	}
	return v.(models.SpeciesRecord), nil
}

func (r *Resolver) backfillSpecies(n int, rec models.SpeciesRecord) {
	r.mem.SetSpecies(n, rec)
	if rec.SpriteURL != nil {
		r.mem.SetSprite(n, *rec.SpriteURL)
	}
}

// GetSpeciesSpriteURL returns the front sprite URL for a species
// without calling PokeAPI: the sprite CDN location is computed from
// the species number and cached in-process.
func (r *Resolver) GetSpeciesSpriteURL(ctx context.Context, n int) (string, error) {
	if err := r.validateSpeciesNumber(ctx, n); err != nil {
		return "", err
	}

	if url, ok := r.mem.Sprite(n); ok {
		return url, nil
	}

	url := fmt.Sprintf(spriteURLTemplate, n)
	r.mem.SetSprite(n, url)
	return url, nil
}

// GetItem returns the raw item payload for a normalized item name.
// With allowNetwork false, a miss in both cache tiers fails with
// ErrNotCached instead of reaching PokeAPI; this serves the
// "pre-warmed items only" mode used after WarmKnownEvItems.
func (r *Resolver) GetItem(ctx context.Context, name string, allowNetwork bool) (pokeapi.ItemResponse, error) {
	normalized := evcalc.NormalizeItemName(name)
	if normalized == "" {
		return pokeapi.ItemResponse{}, fmt.Errorf("%w: empty item name", ErrOutOfRange)
	}

	key := "pokeapi:item:" + normalized
	v, err, _ := r.group.Do(key, func() (any, error) {
		if item, ok := r.mem.Item(normalized); ok {
			return item, nil
		}

		var item pokeapi.ItemResponse
		if found := r.durableGet(ctx, key, &item); found {
			r.mem.SetItem(normalized, item)
			return item, nil
		}

		if !allowNetwork {
			return pokeapi.ItemResponse{}, fmt.Errorf("%w: %s", ErrNotCached, normalized)
		}

		raw, err := r.client.GetItem(ctx, normalized)
		if err != nil {
			return pokeapi.ItemResponse{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}

		r.mem.SetItem(normalized, *raw)
		r.durableSet(ctx, key, raw)
		return *raw, nil
	})
	if err != nil {
		return pokeapi.ItemResponse{}, err
	}
	return v.(pokeapi.ItemResponse), nil
}

// WarmKnownEvItems fetches the fixed EV item allowlist once per
// process. Subsequent calls return the first run's outcome without
// refetching; each item still goes through the cache tiers, so only
// genuinely missing entries reach PokeAPI.
func (r *Resolver) WarmKnownEvItems(ctx context.Context) error {
	r.warmOnce.Do(func() {
		names := evcalc.KnownEvItemNames()
		slog.InfoContext(ctx, "Warming EV item cache", "items", len(names))

		for _, name := range names {
			if _, err := r.GetItem(ctx, name, true); err != nil {
				r.warmErr = fmt.Errorf("failed to warm item %q: %w", name, err)
				slog.ErrorContext(ctx, "EV item warm failed", "item", name, "error", err)
				return
			}
		}

		slog.InfoContext(ctx, "EV item cache warmed", "items", len(names))
	})
	return r.warmErr
}

// RewarmKnownEvItems re-runs the allowlist fetch without the
// once-per-process memoization. Entries already cached are served from
// the cache tiers, so a periodic re-warm only repairs gaps (for
// example after the durable store was flushed) and retries earlier
// failures.
func (r *Resolver) RewarmKnownEvItems(ctx context.Context) error {
	var firstErr error
	for _, name := range evcalc.KnownEvItemNames() {
		if _, err := r.GetItem(ctx, name, true); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to warm item %q: %w", name, err)
		}
	}
	return firstErr
}

// GetNatureTable returns all natures with their stat modifiers,
// sorted by name for stable presentation.
func (r *Resolver) GetNatureTable(ctx context.Context) ([]evcalc.NatureEffect, error) {
	key := "pokeapi:natures"
	v, err, _ := r.group.Do(key, func() (any, error) {
		if natures, ok := r.mem.Natures(); ok {
			return natures, nil
		}

		var natures []evcalc.NatureEffect
		if found := r.durableGet(ctx, key, &natures); found {
			r.mem.SetNatures(natures)
			return natures, nil
		}

		page, err := r.client.GetNatureList(ctx, natureListLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}

		natures = make([]evcalc.NatureEffect, 0, len(page.Results))
		for _, entry := range page.Results {
			detail, err := r.client.GetNature(ctx, entry.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
			}
			natures = append(natures, evcalc.NatureEffect{
				Name:          detail.Name,
				IncreasedStat: statKeyFromUpstream(detail.IncreasedStat),
				DecreasedStat: statKeyFromUpstream(detail.DecreasedStat),
			})
		}

		sort.Slice(natures, func(i, j int) bool {
			return natures[i].Name < natures[j].Name
		})

		r.mem.SetNatures(natures)
		r.durableSet(ctx, key, natures)
		return natures, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]evcalc.NatureEffect), nil
}

// GetSpeciesList returns the full (name, speciesNumber) list sized by
// the authoritative count, sorted by species number.
func (r *Resolver) GetSpeciesList(ctx context.Context) ([]models.SpeciesListEntry, error) {
	key := "pokeapi:species-list"
	v, err, _ := r.group.Do(key, func() (any, error) {
		if list, ok := r.mem.SpeciesList(); ok {
			return list, nil
		}

		var list []models.SpeciesListEntry
		if found := r.durableGet(ctx, key, &list); found {
			r.mem.SetSpeciesList(list)
			return list, nil
		}

		count, err := r.GetSpeciesCount(ctx)
		if err != nil {
			return nil, err
		}

		page, err := r.client.GetPokemonPage(ctx, count)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}

		list = make([]models.SpeciesListEntry, 0, len(page.Results))
		for i, entry := range page.Results {
			if entry.Name == "" {
				continue
			}
			n := parseSpeciesNumberFromURL(entry.URL)
			if n == 0 {
				n = i + 1
			}
			list = append(list, models.SpeciesListEntry{Name: entry.Name, SpeciesNumber: n})
		}

		sort.Slice(list, func(i, j int) bool {
			return list[i].SpeciesNumber < list[j].SpeciesNumber
		})

		r.mem.SetSpeciesList(list)
		r.durableSet(ctx, key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.SpeciesListEntry), nil
}

// durableGet reads the durable tier, treating store failures as a
// miss: the process cache / upstream path stays correct without it,
// only slower across restarts.
func (r *Resolver) durableGet(ctx context.Context, key string, dest any) bool {
	if r.durable == nil {
		return false
	}
	found, err := r.durable.Get(ctx, key, dest)
	if err != nil {
		slog.WarnContext(ctx, "Durable cache lookup failed, falling back to PokeAPI",
			"key", key, "error", err)
		return false
	}
	return found
}

// durableSet writes the durable tier best-effort; persistence failure
// is logged, never propagated.
func (r *Resolver) durableSet(ctx context.Context, key string, value any) {
	if r.durable == nil {
		return
	}
	if err := r.durable.Set(ctx, key, value); err != nil {
		slog.WarnContext(ctx, "Durable cache upsert failed",
			"key", key, "error", err)
	}
}

// normalizeSpecies maps the raw PokeAPI payload into the domain shape
func normalizeSpecies(raw *pokeapi.PokemonResponse) models.SpeciesRecord {
	var rec models.SpeciesRecord

	for _, s := range raw.Stats {
		if key := statKeyFromUpstream(&s.Stat); key != nil {
			rec.BaseStats = rec.BaseStats.With(*key, s.BaseStat)
			rec.EVYield = rec.EVYield.With(*key, s.Effort)
		}
	}

	types := append([]pokeapi.TypeSlot(nil), raw.Types...)
	sort.Slice(types, func(i, j int) bool { return types[i].Slot < types[j].Slot })
	for _, t := range types {
		rec.Types = append(rec.Types, t.Type.Name)
	}

	if raw.Sprites.FrontDefault != nil && *raw.Sprites.FrontDefault != "" {
		url := *raw.Sprites.FrontDefault
		rec.SpriteURL = &url
	}

	return rec
}

// statKeyFromUpstream maps PokeAPI stat names onto StatKeys
func statKeyFromUpstream(ref *pokeapi.NamedAPIResource) *evcalc.StatKey {
	if ref == nil {
		return nil
	}
	var key evcalc.StatKey
	switch ref.Name {
	case "hp":
		key = evcalc.StatHP
	case "attack":
		key = evcalc.StatAttack
	case "defense":
		key = evcalc.StatDefense
	case "special-attack":
		key = evcalc.StatSpecialAttack
	case "special-defense":
		key = evcalc.StatSpecialDefense
	case "speed":
		key = evcalc.StatSpeed
	default:
		return nil
	}
	return &key
}

func parseSpeciesNumberFromURL(url string) int {
	m := speciesURLPattern.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
