package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *HTTPClient {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	return &HTTPClient{
		httpClient:  httpClient,
		baseURL:     baseURL,
		userAgent:   "go-evkeeper-test",
		retryClient: NewDefaultRetryClient(httpClient),
	}
}

func TestGetPokemon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon/25", r.URL.Path)
		assert.Equal(t, "go-evkeeper-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 25,
			"name": "pikachu",
			"stats": [
				{"base_stat": 35, "effort": 0, "stat": {"name": "hp"}},
				{"base_stat": 90, "effort": 2, "stat": {"name": "speed"}}
			],
			"types": [{"slot": 1, "type": {"name": "electric"}}],
			"sprites": {"front_default": "https://sprites.example/25.png"}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	pokemon, err := client.GetPokemon(context.Background(), 25)
	require.NoError(t, err)

	assert.Equal(t, "pikachu", pokemon.Name)
	require.Len(t, pokemon.Stats, 2)
	assert.Equal(t, 35, pokemon.Stats[0].BaseStat)
	assert.Equal(t, 2, pokemon.Stats[1].Effort)
	require.Len(t, pokemon.Types, 1)
	assert.Equal(t, "electric", pokemon.Types[0].Type.Name)
	require.NotNil(t, pokemon.Sprites.FrontDefault)
	assert.Equal(t, "https://sprites.example/25.png", *pokemon.Sprites.FrontDefault)
}

func TestGetPokemonCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"count": 1302, "results": [{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	count, err := client.GetPokemonCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1302, count)
}

func TestGetPokemonCountInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetPokemonCount(context.Background())
	assert.Error(t, err)
}

func TestGetItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item/protein", r.URL.Path)
		w.Write([]byte(`{"id": 46, "name": "protein", "cost": 9800, "category": {"name": "vitamins"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	item, err := client.GetItem(context.Background(), "protein")
	require.NoError(t, err)
	assert.Equal(t, "protein", item.Name)
	assert.Equal(t, "vitamins", item.Category.Name)
}

func TestGetNature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nature/adamant", r.URL.Path)
		w.Write([]byte(`{"name": "adamant", "increased_stat": {"name": "attack"}, "decreased_stat": {"name": "special-attack"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	nature, err := client.GetNature(context.Background(), "adamant")
	require.NoError(t, err)
	assert.Equal(t, "adamant", nature.Name)
	require.NotNil(t, nature.IncreasedStat)
	assert.Equal(t, "attack", nature.IncreasedStat.Name)
}

func TestGetNatureNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "hardy", "increased_stat": null, "decreased_stat": null}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	nature, err := client.GetNature(context.Background(), "hardy")
	require.NoError(t, err)
	assert.Nil(t, nature.IncreasedStat)
	assert.Nil(t, nature.DecreasedStat)
}

func TestRetryOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id": 1, "name": "bulbasaur", "stats": [], "types": [], "sprites": {}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	pokemon, err := client.GetPokemon(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "bulbasaur", pokemon.Name)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestNoRetryOnNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetItem(context.Background(), "no-such-item")
	assert.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}
