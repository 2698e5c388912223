package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/contract"
)

const logModule = "CACHE"

// CachedRepository serves List from a PageCache and evicts the kind on
// every successful Mutate. Cache faults are logged and never surface.
type CachedRepository[T entity.Record] struct {
	next   contract.ContentRepository[T]
	cache  PageCache
	logger logger.ILogger
}

func NewCachedRepository[T entity.Record](next contract.ContentRepository[T], c PageCache, l logger.ILogger) *CachedRepository[T] {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &CachedRepository[T]{next: next, cache: c, logger: l}
}

func (r *CachedRepository[T]) Kind() entity.ContentKind {
	return r.next.Kind()
}

func (r *CachedRepository[T]) List(ctx context.Context, q contract.ListQuery) (*contract.Page[T], error) {
	key, err := r.key(q)
	if err != nil {
		return r.next.List(ctx, q)
	}
	gen, gerr := r.cache.Generation(ctx, r.prefix())
	if gerr != nil {
		r.logger.Warn(logModule, "cache generation failed", map[string]interface{}{"kind": string(r.Kind()), "error": gerr.Error()})
		return r.next.List(ctx, q)
	}
	key = fmt.Sprintf("%s%d:%s", r.prefix(), gen, key)

	if raw, ok, gerr := r.cache.Get(ctx, key); gerr != nil {
		r.logger.Warn(logModule, "cache get failed", map[string]interface{}{"key": key, "error": gerr.Error()})
	} else if ok {
		var page contract.Page[T]
		if uerr := json.Unmarshal(raw, &page); uerr == nil {
			return &page, nil
		}
	}

	page, err := r.next.List(ctx, q)
	if err != nil {
		return nil, err
	}
	// A Mutate that landed while next.List ran may have been read or not;
	// either way the page must not outlive that eviction.
	if now, gerr := r.cache.Generation(ctx, r.prefix()); gerr != nil || now != gen {
		return page, nil
	}
	if raw, merr := json.Marshal(page); merr == nil {
		if serr := r.cache.Set(ctx, key, raw); serr != nil {
			r.logger.Warn(logModule, "cache set failed", map[string]interface{}{"key": key, "error": serr.Error()})
		}
	}
	return page, nil
}

func (r *CachedRepository[T]) Mutate(ctx context.Context, id string, patch contract.Patch) error {
	if err := r.next.Mutate(ctx, id, patch); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

// Invalidate drops every cached page of this repository's kind.
func (r *CachedRepository[T]) Invalidate(ctx context.Context) {
	if err := InvalidateKind(ctx, r.cache, r.Kind()); err != nil {
		r.logger.Warn(logModule, "cache invalidate failed", map[string]interface{}{"kind": string(r.Kind()), "error": err.Error()})
	}
}

// InvalidateKind evicts kind and bumps its generation. Keys carry the
// generation, so a page stored under an older one is never read again.
func InvalidateKind(ctx context.Context, c PageCache, kind entity.ContentKind) error {
	return c.InvalidatePrefix(ctx, kindPrefix(kind))
}

func kindPrefix(kind entity.ContentKind) string {
	return string(kind) + ":"
}

func (r *CachedRepository[T]) prefix() string {
	return kindPrefix(r.Kind())
}

// key hashes the query; List qualifies it with kind and generation.
func (r *CachedRepository[T]) key(q contract.ListQuery) (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:]), nil
}
