// Package profile is the read path for full profiles: upstream fetch
// with an optional cache in front. Profile data changes slowly, so
// cached entries are served for an hour before refetching.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/cache"
	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/profile"
	"github.com/recruitu/lateral/internal/metrics"
)

const defaultTTL = time.Hour

// Fetcher fetches full profiles from the upstream API.
type Fetcher interface {
	ProfilesByID(ctx context.Context, ids []string) (profile.Envelope, error)
}

// KV is the cache contract the repository needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo serves profile lookups, consulting the cache before the
// upstream. A nil KV disables caching entirely.
type Repo struct {
	fetcher Fetcher
	kv      KV
	ttl     time.Duration
	logger  *zap.Logger
}

// New creates a profile repository. kv may be nil.
func New(fetcher Fetcher, kv KV, logger *zap.Logger) *Repo {
	return &Repo{
		fetcher: fetcher,
		kv:      kv,
		ttl:     defaultTTL,
		logger:  logger,
	}
}

// WithTTL overrides the cache entry lifetime.
func (r *Repo) WithTTL(ttl time.Duration) *Repo {
	if ttl > 0 {
		r.ttl = ttl
	}
	return r
}

// ByID returns the full profile for one identifier. Fails with
// domain.ErrProfileNotFound when the upstream has no record for it.
func (r *Repo) ByID(ctx context.Context, id string) (profile.Record, error) {
	if rec, ok := r.fromCache(ctx, id); ok {
		return rec, nil
	}

	env, err := r.fetcher.ProfilesByID(ctx, []string{id})
	if err != nil {
		return profile.Record{}, err
	}

	rec, ok := env.Lookup(id)
	if !ok {
		return profile.Record{}, fmt.Errorf("profile %s: %w", id, domain.ErrProfileNotFound)
	}

	r.toCache(ctx, id, rec)
	return rec, nil
}

// ByIDs returns the full profiles for several identifiers in request
// order. Cached entries are served locally; the remainder is fetched in
// one upstream call. Unknown identifiers are skipped, not errored.
func (r *Repo) ByIDs(ctx context.Context, ids []string) ([]profile.Record, error) {
	found := make(map[string]profile.Record, len(ids))
	var missing []string
	for _, id := range ids {
		if rec, ok := r.fromCache(ctx, id); ok {
			found[id] = rec
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		env, err := r.fetcher.ProfilesByID(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, id := range missing {
			rec, ok := env.Lookup(id)
			if !ok {
				continue
			}
			found[id] = rec
			r.toCache(ctx, id, rec)
		}
	}

	out := make([]profile.Record, 0, len(found))
	for _, id := range ids {
		if rec, ok := found[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *Repo) fromCache(ctx context.Context, id string) (profile.Record, bool) {
	if r.kv == nil {
		return profile.Record{}, false
	}

	data, err := r.kv.Get(ctx, cacheKey(id))
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			r.logger.Warn("profile cache read failed", zap.String("id", id), zap.Error(err))
		}
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return profile.Record{}, false
	}

	var rec profile.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		r.logger.Warn("profile cache entry corrupt", zap.String("id", id), zap.Error(err))
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return profile.Record{}, false
	}

	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return rec, true
}

func (r *Repo) toCache(ctx context.Context, id string, rec profile.Record) {
	if r.kv == nil {
		return
	}

	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Warn("profile cache encode failed", zap.String("id", id), zap.Error(err))
		return
	}
	if err := r.kv.SetWithTTL(ctx, cacheKey(id), data, r.ttl); err != nil {
		r.logger.Warn("profile cache write failed", zap.String("id", id), zap.Error(err))
	}
}

func cacheKey(id string) string {
	return domain.KeyPrefix + "profile:" + id
}
