package geocoding

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmfast/platform/pkg/logging"
)

// CachedGeocoder wraps a Geocoder with a Redis read-through cache. Pincode to
// coordinate mappings are effectively immutable, so a long TTL is fine; the
// cache mostly shields Nominatim's rate limits from webhook traffic.
type CachedGeocoder struct {
	inner  Geocoder
	rdb    *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedGeocoder wraps inner with a Redis cache. If rdb is nil, the inner
// geocoder is used directly.
func NewCachedGeocoder(inner Geocoder, rdb *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedGeocoder {
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedGeocoder{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

var _ Geocoder = (*CachedGeocoder)(nil)

func cacheKey(pincode string) string {
	return "geocode:pincode:" + pincode
}

func (c *CachedGeocoder) ResolvePincode(ctx context.Context, pincode string) (Location, error) {
	if c.rdb == nil {
		return c.inner.ResolvePincode(ctx, pincode)
	}

	key := cacheKey(pincode)
	if cached, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var loc Location
		if err := json.Unmarshal(cached, &loc); err == nil {
			return loc, nil
		}
		// Corrupt entry: fall through and overwrite it.
		c.logger.Warn("dropping unreadable geocode cache entry", "pincode", pincode)
	} else if err != redis.Nil {
		c.logger.Warn("geocode cache read failed", "error", err, "pincode", pincode)
	}

	loc, err := c.inner.ResolvePincode(ctx, pincode)
	if err != nil {
		return Location{}, err
	}

	if encoded, err := json.Marshal(loc); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.Warn("geocode cache write failed", "error", err, "pincode", pincode)
		}
	}
	return loc, nil
}
