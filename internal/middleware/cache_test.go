package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Custom": {"a", "b"}}
	body := []byte(`{"items":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Fatalf("Content-Type = %q", got)
	}
	if len(gotHdr["X-Custom"]) != 2 {
		t.Fatalf("X-Custom = %v, want both values", gotHdr["X-Custom"])
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); len(bs) < 8 && ok {
			t.Fatalf("decode accepted short payload %v", bs)
		}
	}
	// Header length pointing past the buffer.
	bad := []byte{0, 0, 0, 200, 0, 0, 255, 255, 'x'}
	if _, _, _, ok := decodePayload(bad); ok {
		t.Fatal("decode accepted corrupt header length")
	}
}

func testContext(target, userID string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/items")
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c
}

func TestCacheKeySeparatesUsers(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "user_route_query", Prefix: "t:cache"}

	a := cacheKeyFrom(cfg, testContext("/v1/items", "user-a"))
	b := cacheKeyFrom(cfg, testContext("/v1/items", "user-b"))
	if a == b {
		t.Fatal("different users must not share a cache key")
	}

	a2 := cacheKeyFrom(cfg, testContext("/v1/items", "user-a"))
	if a != a2 {
		t.Fatal("cache key must be stable for the same request")
	}
}

func TestCacheKeyQuerySensitivity(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "user_route_query", Prefix: "t:cache"}

	plain := cacheKeyFrom(cfg, testContext("/v1/items", "u"))
	withQ := cacheKeyFrom(cfg, testContext("/v1/items?category=balls", "u"))
	if plain == withQ {
		t.Fatal("query string must change the cache key")
	}

	routeOnly := config.CacheConfig{KeyStrategy: "user_route", Prefix: "t:cache"}
	p2 := cacheKeyFrom(routeOnly, testContext("/v1/items", "u"))
	q2 := cacheKeyFrom(routeOnly, testContext("/v1/items?category=balls", "u"))
	if p2 != q2 {
		t.Fatal("user_route strategy must ignore the query string")
	}
}
