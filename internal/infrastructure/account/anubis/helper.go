package anubis

import (
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errAnubisTransient)
}

// principalCacheKey keeps raw bearer tokens out of process memory caches.
func principalCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// introspectionURL joins the configured base and path. An absolute path wins over the base.
func introspectionURL(baseURL, path string) string {
	baseURL = strings.TrimSpace(baseURL)
	path = strings.TrimSpace(path)
	if path == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return path
	}

	joined, err := url.JoinPath(baseURL, path)
	if err != nil {
		return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	return joined
}
