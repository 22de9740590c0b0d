package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/01moynul/storefront-golang/internal/latest"
	"github.com/01moynul/storefront-golang/internal/models"
)

// maxParallelLookups bounds the product lookups of one resolution pass.
const maxParallelLookups = 8

// ProductFetcher is the catalog lookup the resolver depends on.
type ProductFetcher interface {
	Product(ctx context.Context, id int64) (models.Product, error)
}

// Resolution is the set of products fetched for one cart snapshot.
type Resolution struct {
	Token    uint64
	Entries  []models.CartEntry
	Products map[int64]models.Product
	// Missing lists entries whose lookup failed; they are treated as
	// unresolved until a later pass succeeds.
	Missing []int64
}

// Resolver re-resolves cart entries into products. A newer Refresh cancels
// an older one still in flight, and only the newest result is published.
type Resolver struct {
	fetcher ProductFetcher
	logger  *zap.Logger
	tracker latest.Tracker

	mu      sync.RWMutex
	current Resolution
}

func NewResolver(fetcher ProductFetcher, logger *zap.Logger) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		logger:  logger,
		current: Resolution{Products: map[int64]models.Product{}},
	}
}

// Refresh fetches every product in entries concurrently. A failed lookup
// does not abort the batch. It returns latest.ErrSuperseded if a newer
// Refresh started before this one finished.
func (r *Resolver) Refresh(ctx context.Context, entries []models.CartEntry) (Resolution, error) {
	return r.RefreshFrom(ctx, func() []models.CartEntry { return entries })
}

// RefreshFrom is Refresh with the entries taken by snapshot once the pass
// has claimed its token, so the newest pass always sees every mutation
// made before it started.
func (r *Resolver) RefreshFrom(ctx context.Context, snapshot func() []models.CartEntry) (Resolution, error) {
	res, err := latest.Run(ctx, &r.tracker, func(ctx context.Context, token uint64) (Resolution, error) {
		res, err := r.resolve(ctx, snapshot())
		res.Token = token
		return res, err
	}, func(res Resolution) {
		r.mu.Lock()
		r.current = res
		r.mu.Unlock()
	})
	if err != nil {
		return Resolution{}, err
	}
	return res, nil
}

// Latest returns the most recently published resolution.
func (r *Resolver) Latest() Resolution {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Resolver) resolve(ctx context.Context, entries []models.CartEntry) (Resolution, error) {
	entries = append([]models.CartEntry{}, entries...)
	products := make([]*models.Product, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLookups)
	for i, e := range entries {
		g.Go(func() error {
			p, err := r.fetcher.Product(gctx, e.ProductID)
			if err != nil {
				if models.IsNotFound(err) {
					r.logger.Debug("cart product no longer in catalog", zap.Int64("productId", e.ProductID))
				} else if gctx.Err() == nil {
					r.logger.Warn("cart product lookup failed", zap.Int64("productId", e.ProductID), zap.Error(err))
				}
				return nil
			}
			products[i] = &p
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}

	res := Resolution{Entries: entries, Products: make(map[int64]models.Product, len(entries))}
	for i, p := range products {
		if p == nil {
			res.Missing = append(res.Missing, entries[i].ProductID)
			continue
		}
		res.Products[entries[i].ProductID] = *p
	}
	return res, nil
}

// Lines joins entries with resolved products in cart order, skipping
// entries that did not resolve.
func Lines(entries []models.CartEntry, resolved map[int64]models.Product) []models.CartLine {
	lines := []models.CartLine{}
	for _, e := range entries {
		p, ok := resolved[e.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			Product:   p,
			Quantity:  e.Quantity,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(e.Quantity))),
		})
	}
	return lines
}
