package storefront

import (
	"context"
	"fmt"

	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/models"
)

// Product fetches one product. Unknown ids yield a models.NotFoundError.
func (a *App) Product(ctx context.Context, id int64) (models.Product, error) {
	if id < 1 {
		return models.Product{}, models.NewValidationError("id", "Invalid product ID")
	}
	return a.catalog.Product(ctx, id)
}

// Products returns one page of the browse listing.
func (a *App) Products(ctx context.Context, q catalog.Query) (models.ProductPage, error) {
	products, err := a.listing(ctx)
	if err != nil {
		return models.ProductPage{}, err
	}
	return catalog.Browse(products, q), nil
}

// Categories returns "All" and every category of the browse listing.
func (a *App) Categories(ctx context.Context) ([]string, error) {
	products, err := a.listing(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(products), nil
}

// Similar returns other products in the category of product id.
func (a *App) Similar(ctx context.Context, id int64) ([]models.Product, error) {
	product, err := a.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := a.listing(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Similar(products, product.Category, product.ID), nil
}

func (a *App) TopRated(ctx context.Context) ([]models.Product, error) {
	products, err := a.listing(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.TopRated(products), nil
}

func (a *App) BiggestSales(ctx context.Context) ([]models.Product, error) {
	products, err := a.listing(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.BiggestSales(products), nil
}

// Suggest returns live search suggestions for term. A call overtaken by a
// newer one returns latest.ErrSuperseded.
func (a *App) Suggest(ctx context.Context, term string) ([]models.Product, error) {
	return a.suggester.Suggest(ctx, term)
}

func (a *App) listing(ctx context.Context) ([]models.Product, error) {
	products, err := a.catalog.List(ctx, a.opts.BrowseLimit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Comments lists the comments on a product.
func (a *App) Comments(ctx context.Context, productID int64) []string {
	return a.comments.List(ctx, productID)
}

// AddComment appends a comment to a product.
func (a *App) AddComment(ctx context.Context, productID int64, text string) ([]string, error) {
	return a.comments.Add(ctx, productID, text)
}

// RemoveComment deletes the comment at index.
func (a *App) RemoveComment(ctx context.Context, productID int64, index int) []string {
	return a.comments.Remove(ctx, productID, index)
}
