package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimResolvePincode(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"26.8467","lon":"80.9462","display_name":"Lucknow, Uttar Pradesh, 226001, India"}]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL)
	loc, err := client.ResolvePincode(context.Background(), "226001")
	require.NoError(t, err)

	assert.InDelta(t, 26.8467, loc.Lat, 1e-6)
	assert.InDelta(t, 80.9462, loc.Lon, 1e-6)
	assert.Equal(t, "Lucknow, Uttar Pradesh, 226001, India", loc.DisplayName)
	assert.False(t, loc.Approximate)
	assert.Contains(t, gotQuery, "postalcode=226001")
	assert.Contains(t, gotQuery, "country=India")
}

func TestNominatimResolvePincodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL)
	_, err := client.ResolvePincode(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrPincodeNotFound)
}

func TestPlaceholderIsApproximate(t *testing.T) {
	loc := Placeholder()
	assert.True(t, loc.Approximate)
	assert.Equal(t, "India", loc.DisplayName)
	assert.Zero(t, loc.Lat)
	assert.Zero(t, loc.Lon)
}

type countingGeocoder struct {
	calls int
	loc   Location
	err   error
}

func (c *countingGeocoder) ResolvePincode(ctx context.Context, pincode string) (Location, error) {
	c.calls++
	if c.err != nil {
		return Location{}, c.err
	}
	return c.loc, nil
}

func TestCachedGeocoderServesFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingGeocoder{loc: Location{Lat: 26.8467, Lon: 80.9462, DisplayName: "Lucknow"}}
	cached := NewCachedGeocoder(inner, rdb, time.Hour, nil)

	ctx := context.Background()
	first, err := cached.ResolvePincode(ctx, "226001")
	require.NoError(t, err)
	second, err := cached.ResolvePincode(ctx, "226001")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second lookup should hit the cache")
	assert.True(t, mr.Exists("geocode:pincode:226001"))
}

func TestCachedGeocoderDoesNotCacheFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingGeocoder{err: ErrPincodeNotFound}
	cached := NewCachedGeocoder(inner, rdb, time.Hour, nil)

	ctx := context.Background()
	_, err := cached.ResolvePincode(ctx, "999999")
	assert.ErrorIs(t, err, ErrPincodeNotFound)
	_, err = cached.ResolvePincode(ctx, "999999")
	assert.ErrorIs(t, err, ErrPincodeNotFound)

	assert.Equal(t, 2, inner.calls)
	assert.False(t, mr.Exists("geocode:pincode:999999"))
}
