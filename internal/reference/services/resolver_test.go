package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"go-evkeeper/internal/evcalc"
	"go-evkeeper/pkg/pokeapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is an instrumented in-memory stand-in for PokeAPI
type fakeClient struct {
	count   int
	pokemon map[int]*pokeapi.PokemonResponse
	items   map[string]*pokeapi.ItemResponse
	natures map[string]*pokeapi.NatureResponse
	failAll atomic.Bool
	release chan struct{} // when set, GetPokemon blocks until closed

	pokemonCalls int32
	countCalls   int32
	itemCalls    int32
	natureCalls  int32
	pageCalls    int32
}

func newFakeClient() *fakeClient {
	sprite := "https://sprites.example/25.png"
	return &fakeClient{
		count: 1000,
		pokemon: map[int]*pokeapi.PokemonResponse{
			25: {
				ID:   25,
				Name: "pikachu",
				Stats: []pokeapi.StatValue{
					{BaseStat: 35, Effort: 0, Stat: pokeapi.NamedAPIResource{Name: "hp"}},
					{BaseStat: 55, Effort: 0, Stat: pokeapi.NamedAPIResource{Name: "attack"}},
					{BaseStat: 40, Effort: 0, Stat: pokeapi.NamedAPIResource{Name: "defense"}},
					{BaseStat: 50, Effort: 0, Stat: pokeapi.NamedAPIResource{Name: "special-attack"}},
					{BaseStat: 50, Effort: 0, Stat: pokeapi.NamedAPIResource{Name: "special-defense"}},
					{BaseStat: 90, Effort: 2, Stat: pokeapi.NamedAPIResource{Name: "speed"}},
				},
				Types:   []pokeapi.TypeSlot{{Slot: 1, Type: pokeapi.NamedAPIResource{Name: "electric"}}},
				Sprites: pokeapi.Sprites{FrontDefault: &sprite},
			},
		},
		items: map[string]*pokeapi.ItemResponse{
			"protein": {ID: 46, Name: "protein", Cost: 9800, Category: pokeapi.NamedAPIResource{Name: "vitamins"}},
		},
		natures: map[string]*pokeapi.NatureResponse{
			"adamant": {
				Name:          "adamant",
				IncreasedStat: &pokeapi.NamedAPIResource{Name: "attack"},
				DecreasedStat: &pokeapi.NamedAPIResource{Name: "special-attack"},
			},
			"hardy": {Name: "hardy"},
		},
	}
}

func (f *fakeClient) GetPokemon(ctx context.Context, n int) (*pokeapi.PokemonResponse, error) {
	atomic.AddInt32(&f.pokemonCalls, 1)
	if f.release != nil {
		<-f.release
	}
	if f.failAll.Load() {
		return nil, errors.New("upstream down")
	}
	p, ok := f.pokemon[n]
	if !ok {
		return nil, fmt.Errorf("PokeAPI returned status 404 for /pokemon/%d", n)
	}
	return p, nil
}

func (f *fakeClient) GetPokemonCount(ctx context.Context) (int, error) {
	atomic.AddInt32(&f.countCalls, 1)
	if f.failAll.Load() {
		return 0, errors.New("upstream down")
	}
	return f.count, nil
}

func (f *fakeClient) GetPokemonPage(ctx context.Context, limit int) (*pokeapi.PagedList, error) {
	atomic.AddInt32(&f.pageCalls, 1)
	if f.failAll.Load() {
		return nil, errors.New("upstream down")
	}
	return &pokeapi.PagedList{
		Count: f.count,
		Results: []pokeapi.NamedAPIResource{
			{Name: "pikachu", URL: "https://pokeapi.co/api/v2/pokemon/25/"},
			{Name: "bulbasaur", URL: "https://pokeapi.co/api/v2/pokemon/1/"},
		},
	}, nil
}

func (f *fakeClient) GetItem(ctx context.Context, name string) (*pokeapi.ItemResponse, error) {
	atomic.AddInt32(&f.itemCalls, 1)
	if f.failAll.Load() {
		return nil, errors.New("upstream down")
	}
	item, ok := f.items[name]
	if !ok {
		// The warm allowlist is larger than the fixture map; synthesize
		// the rest so warm runs succeed.
		return &pokeapi.ItemResponse{Name: name}, nil
	}
	return item, nil
}

func (f *fakeClient) GetNatureList(ctx context.Context, limit int) (*pokeapi.PagedList, error) {
	if f.failAll.Load() {
		return nil, errors.New("upstream down")
	}
	return &pokeapi.PagedList{
		Count: 2,
		Results: []pokeapi.NamedAPIResource{
			{Name: "hardy"},
			{Name: "adamant"},
		},
	}, nil
}

func (f *fakeClient) GetNature(ctx context.Context, name string) (*pokeapi.NatureResponse, error) {
	atomic.AddInt32(&f.natureCalls, 1)
	if f.failAll.Load() {
		return nil, errors.New("upstream down")
	}
	n, ok := f.natures[name]
	if !ok {
		return nil, fmt.Errorf("unknown nature %s", name)
	}
	return n, nil
}

// fakeDurable is an in-memory DurableStore
type fakeDurable struct {
	mu       sync.Mutex
	data     map[string][]byte
	failing  bool
	getCalls int
	setCalls int
}

func newFakeDurable() *fakeDurable {
	return &fakeDurable{data: map[string][]byte{}}
}

func (d *fakeDurable) Get(ctx context.Context, key string, dest any) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.getCalls++
	if d.failing {
		return false, errors.New("storage unavailable")
	}
	raw, ok := d.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (d *fakeDurable) Set(ctx context.Context, key string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setCalls++
	if d.failing {
		return errors.New("storage unavailable")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	d.data[key] = raw
	return nil
}

func TestGetSpeciesNormalizes(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())

	rec, err := resolver.GetSpecies(context.Background(), 25)
	require.NoError(t, err)

	assert.Equal(t, 35, rec.BaseStats.HP)
	assert.Equal(t, 90, rec.BaseStats.Speed)
	assert.Equal(t, 2, rec.EVYield.Speed)
	assert.Equal(t, []string{"electric"}, rec.Types)
	require.NotNil(t, rec.SpriteURL)
	assert.Equal(t, "https://sprites.example/25.png", *rec.SpriteURL)
}

func TestGetSpeciesIdempotentWithinProcess(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	first, err := resolver.GetSpecies(ctx, 25)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := resolver.GetSpecies(ctx, 25)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&client.pokemonCalls))
}

func TestGetSpeciesOutOfRange(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	_, err := resolver.GetSpecies(ctx, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = resolver.GetSpecies(ctx, client.count+1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// The upper bound itself is valid (even if the fixture lacks data)
	_, err = resolver.GetSpecies(ctx, client.count)
	assert.NotErrorIs(t, err, ErrOutOfRange)
}

func TestGetSpeciesCountMemoized(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		count, err := resolver.GetSpeciesCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1000, count)
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&client.countCalls))
}

// Concurrent bursts against the same uncached key must produce exactly
// one upstream call.
func TestGetSpeciesCoalescesConcurrentCallers(t *testing.T) {
	client := newFakeClient()
	client.release = make(chan struct{})
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	// Prime the count so the burst only exercises the species fetch
	_, err := resolver.GetSpeciesCount(ctx)
	require.NoError(t, err)

	const k = 32
	var wg sync.WaitGroup
	results := make([]error, k)

	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = resolver.GetSpecies(ctx, 25)
		}(i)
	}

	// Let all goroutines pile up behind the in-flight fetch, then
	// release it.
	close(client.release)
	wg.Wait()

	for i, err := range results {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&client.pokemonCalls))
}

// A failed fetch must not be cached: the next call retries upstream.
func TestFailureNotCached(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	// Prime the count before turning on failures
	_, err := resolver.GetSpeciesCount(ctx)
	require.NoError(t, err)

	client.failAll.Store(true)
	_, err = resolver.GetSpecies(ctx, 25)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	client.failAll.Store(false)
	rec, err := resolver.GetSpecies(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, []string{"electric"}, rec.Types)
	assert.EqualValues(t, 2, atomic.LoadInt32(&client.pokemonCalls))
}

// A second resolver sharing the durable store answers from it without
// any upstream species call.
func TestCrossRestartConsistency(t *testing.T) {
	durable := newFakeDurable()
	ctx := context.Background()

	first := NewResolver(newFakeClient(), durable)
	rec1, err := first.GetSpecies(ctx, 25)
	require.NoError(t, err)

	secondClient := newFakeClient()
	second := NewResolver(secondClient, durable)
	rec2, err := second.GetSpecies(ctx, 25)
	require.NoError(t, err)

	assert.Equal(t, rec1, rec2)
	assert.EqualValues(t, 0, atomic.LoadInt32(&secondClient.pokemonCalls))
}

// Durable tier failure degrades to a miss; the fetch still succeeds.
func TestDurableFailureDegrades(t *testing.T) {
	client := newFakeClient()
	durable := newFakeDurable()
	durable.failing = true
	resolver := NewResolver(client, durable)

	rec, err := resolver.GetSpecies(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, []string{"electric"}, rec.Types)
}

func TestGetSpeciesSpriteURLNoNetwork(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	url, err := resolver.GetSpeciesSpriteURL(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png", url)

	// Only the count probe may have hit upstream
	assert.EqualValues(t, 0, atomic.LoadInt32(&client.pokemonCalls))

	_, err = resolver.GetSpeciesSpriteURL(ctx, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGetItemAllowNetworkFalse(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	_, err := resolver.GetItem(ctx, "protein", false)
	assert.ErrorIs(t, err, ErrNotCached)
	assert.EqualValues(t, 0, atomic.LoadInt32(&client.itemCalls))

	// After a networked fetch the same lookup succeeds offline
	_, err = resolver.GetItem(ctx, "protein", true)
	require.NoError(t, err)

	item, err := resolver.GetItem(ctx, "Protein", false)
	require.NoError(t, err)
	assert.Equal(t, "protein", item.Name)
	assert.EqualValues(t, 1, atomic.LoadInt32(&client.itemCalls))
}

func TestGetItemEmptyName(t *testing.T) {
	resolver := NewResolver(newFakeClient(), newFakeDurable())
	_, err := resolver.GetItem(context.Background(), "   ", true)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWarmKnownEvItemsOnce(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	require.NoError(t, resolver.WarmKnownEvItems(ctx))
	calls := atomic.LoadInt32(&client.itemCalls)
	assert.EqualValues(t, len(evcalc.KnownEvItemNames()), calls)

	// Second warm is a no-op
	require.NoError(t, resolver.WarmKnownEvItems(ctx))
	assert.Equal(t, calls, atomic.LoadInt32(&client.itemCalls))

	// Warmed items are servable without network
	item, err := resolver.GetItem(ctx, "carbos", false)
	require.NoError(t, err)
	assert.Equal(t, "carbos", item.Name)
}

func TestGetNatureTableSortedAndCached(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())
	ctx := context.Background()

	natures, err := resolver.GetNatureTable(ctx)
	require.NoError(t, err)
	require.Len(t, natures, 2)
	assert.Equal(t, "adamant", natures[0].Name)
	assert.Equal(t, "hardy", natures[1].Name)

	require.NotNil(t, natures[0].IncreasedStat)
	assert.Equal(t, evcalc.StatAttack, *natures[0].IncreasedStat)
	require.NotNil(t, natures[0].DecreasedStat)
	assert.Equal(t, evcalc.StatSpecialAttack, *natures[0].DecreasedStat)
	assert.Nil(t, natures[1].IncreasedStat)

	_, err = resolver.GetNatureTable(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&client.natureCalls))
}

func TestGetSpeciesListSorted(t *testing.T) {
	client := newFakeClient()
	resolver := NewResolver(client, newFakeDurable())

	list, err := resolver.GetSpeciesList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].SpeciesNumber)
	assert.Equal(t, "bulbasaur", list[0].Name)
	assert.Equal(t, 25, list[1].SpeciesNumber)
}

func TestParseSpeciesNumberFromURL(t *testing.T) {
	assert.Equal(t, 25, parseSpeciesNumberFromURL("https://pokeapi.co/api/v2/pokemon/25/"))
	assert.Equal(t, 1, parseSpeciesNumberFromURL("https://pokeapi.co/api/v2/pokemon/1"))
	assert.Zero(t, parseSpeciesNumberFromURL("https://pokeapi.co/api/v2/item/protein/"))
	assert.Zero(t, parseSpeciesNumberFromURL(""))
}
