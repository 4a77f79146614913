/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package webcache builds http.Clients that cache responses via httpcache,
// preferring an S3-backed cache and falling back to an in-memory cache when
// S3 is unavailable.
package webcache

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/mikeb26/boylstonchessclub-ratings/internal"
	"github.com/mikeb26/boylstonchessclub-ratings/s3cache"
)

// NewCachedClient returns an http.Client that caches responses for maxAge.
// Origin cache headers are overridden so that club and federation pages which
// claim to be uncacheable still get cached client-side.
func NewCachedClient(ctx context.Context, maxAge time.Duration) *http.Client {
	hc := httpcache.NewTransport(selectCache(ctx))
	hc.Transport = &ttlTransport{
		maxAge:    maxAge,
		wrappedRT: http.DefaultTransport,
	}

	return &http.Client{Transport: hc}
}

func selectCache(ctx context.Context) httpcache.Cache {
	bucket := internal.WebCacheBucket
	if v, ok := os.LookupEnv(internal.WebCacheBucketEnvVar); ok {
		bucket = v
	}
	if bucket == "" {
		return httpcache.NewMemoryCache()
	}

	cache, err := s3cache.New(ctx, bucket)
	if err != nil {
		log.Printf("webcache: warning failed to init S3 cache: %v; falling back to in-memory cache", err)
		return httpcache.NewMemoryCache()
	}

	return cache
}

// ttlTransport strips origin cache headers and substitutes a fixed max-age so
// httpcache honors our TTL rather than the server's.
type ttlTransport struct {
	maxAge    time.Duration
	wrappedRT http.RoundTripper
}

func (t *ttlTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	req2.Header.Set("User-Agent", internal.UserAgent)

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	resp.Header.Del("Pragma")
	resp.Header.Del("Expires")
	resp.Header.Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d", int(t.maxAge/time.Second)))

	return resp, nil
}
