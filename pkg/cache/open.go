package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/reflow/pkg/errors"
)

// Open returns the remote cache named by rawURL: redis:// and rediss://
// select [RedisCache], mongodb:// and mongodb+srv:// select [MongoCache].
func Open(ctx context.Context, rawURL string) (Cache, error) {
	if err := errors.ValidateCacheURL(rawURL); err != nil {
		return nil, err
	}
	if strings.HasPrefix(rawURL, "redis") {
		return NewRedisCache(ctx, rawURL)
	}
	return NewMongoCache(ctx, rawURL)
}

// Dir returns the local cache directory following the XDG convention:
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func Dir(app string) (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, app), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", app), nil
}
