package geodb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationCountries(t *testing.T) {
	assert.Equal(t, []string{"de"}, LocationCountries("Germany"))
	assert.Equal(t, []string{"de"}, LocationCountries("  GERMANY "))
	assert.Equal(t, []string{"us"}, LocationCountries("New York City"))
	assert.Equal(t, []string{"gb"}, LocationCountries("London"))
	assert.Nil(t, LocationCountries("Atlantis"))
	assert.Nil(t, LocationCountries(""))
}

func TestFixtureTagger(t *testing.T) {
	tagger := NewFixtureTagger(map[string][]Location{
		"Frankfurt": {
			{Name: "Frankfurt am Main", CountryCode: "de"},
			{Name: "Frankfurt (Oder)", CountryCode: "de"},
		},
	})
	locs, err := tagger.TagLocations(context.Background(), "frankfurt")
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "Frankfurt am Main", locs[0].Name)

	locs, err = tagger.TagLocations(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestHTTPClientTagLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/locations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"locations":[{"name":"Berlin","country_code":"de"}]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	locs, err := client.TagLocations(context.Background(), "Berlin")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "de", locs[0].CountryCode)
}

func TestHTTPClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.TagLocations(context.Background(), "Berlin")
	assert.Error(t, err)
}
