// Package storefront ties the cart, the session, the comments and the
// catalog together into the operations the API and the CLI expose.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/cart"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/comments"
	"github.com/01moynul/storefront-golang/internal/latest"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storage"
)

// Catalog is the product source the storefront reads from.
type Catalog interface {
	Product(ctx context.Context, id int64) (models.Product, error)
	Search(ctx context.Context, q string) ([]models.Product, error)
	List(ctx context.Context, limit int) ([]models.Product, error)
}

// Options tunes an App.
type Options struct {
	BrowseLimit     int
	DefaultShipping string
	BcryptCost      int
}

// App is the storefront. It is safe for concurrent use.
type App struct {
	// mu keeps session checks atomic with the cart changes they guard.
	mu sync.Mutex

	cart      *cart.Store
	resolver  *cart.Resolver
	registry  *auth.Registry
	session   *auth.Session
	tokens    *auth.Tokens
	comments  *comments.Store
	catalog   Catalog
	suggester *catalog.Suggester
	opts      Options
	logger    *zap.Logger
}

// New restores the storefront state persisted in kv.
func New(ctx context.Context, kv storage.KV, cat Catalog, tokens *auth.Tokens, opts Options, logger *zap.Logger) *App {
	if opts.BrowseLimit <= 0 {
		opts.BrowseLimit = 150
	}
	if _, err := models.ShippingCost(opts.DefaultShipping); err != nil {
		if opts.DefaultShipping != "" {
			logger.Warn("unknown default shipping option, using standard", zap.String("option", opts.DefaultShipping))
		}
		opts.DefaultShipping = models.ShippingStandard
	}
	return &App{
		cart:      cart.NewStore(ctx, kv, logger),
		resolver:  cart.NewResolver(cat, logger),
		registry:  auth.NewRegistry(ctx, kv, logger, opts.BcryptCost),
		session:   auth.NewSession(ctx, kv, logger),
		tokens:    tokens,
		comments:  comments.NewStore(kv, logger),
		catalog:   cat,
		suggester: catalog.NewSuggester(cat),
		opts:      opts,
		logger:    logger,
	}
}

// Register adds a new user to the registry. It does not log them in.
func (a *App) Register(ctx context.Context, in auth.RegisterInput) (models.User, error) {
	user, err := a.registry.Register(ctx, in)
	if err != nil {
		return models.User{}, err
	}
	a.logger.Info("user registered", zap.String("email", user.Email))
	return user, nil
}

// Login makes the matching user the session user and issues a bearer token.
func (a *App) Login(ctx context.Context, email, password string) (models.User, string, error) {
	// 1. --- Check Credentials ---
	user, err := a.registry.Authenticate(email, password)
	if err != nil {
		return models.User{}, "", err
	}

	// 2. --- Issue Token ---
	token, err := a.tokens.GenerateToken(user.Email)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate token: %w", err)
	}

	// 3. --- Start Session ---
	// Replaces any previous session user.
	a.mu.Lock()
	a.session.Set(ctx, user)
	a.mu.Unlock()

	a.logger.Info("user logged in", zap.String("email", user.Email))
	return user, token, nil
}

// Logout ends the session and empties the cart.
func (a *App) Logout(ctx context.Context) {
	a.mu.Lock()
	user, ok := a.session.Current()
	a.session.Clear(ctx)
	a.cart.Clear(ctx)
	a.mu.Unlock()

	a.refresh(ctx)
	if ok {
		a.logger.Info("user logged out", zap.String("email", user.Email))
	}
}

// CurrentUser returns the session user, if any.
func (a *App) CurrentUser() (models.User, bool) {
	return a.session.Current()
}

// Authorize validates a bearer token. The token must belong to the current
// session user, so logging out revokes every token issued before.
func (a *App) Authorize(token string) (models.User, error) {
	email, err := a.tokens.ValidateToken(token)
	if err != nil {
		return models.User{}, models.ErrLoginRequired
	}
	user, ok := a.session.Current()
	if !ok || user.Email != email {
		return models.User{}, models.ErrLoginRequired
	}
	return user, nil
}

// AddToCart adds one of productID to the cart. It needs a session user.
func (a *App) AddToCart(ctx context.Context, productID int64) (models.CartView, error) {
	if productID < 1 {
		return models.CartView{}, models.NewValidationError("productId", "Invalid product ID")
	}

	// Check and add under one lock so a concurrent Logout cannot slip between.
	a.mu.Lock()
	if _, ok := a.session.Current(); !ok {
		a.mu.Unlock()
		return models.CartView{}, models.ErrLoginRequired
	}
	a.cart.Add(ctx, productID)
	a.mu.Unlock()

	return a.Cart(ctx, "")
}

// SetQuantity changes the quantity of a product already in the cart.
func (a *App) SetQuantity(ctx context.Context, productID int64, quantity int) (models.CartView, error) {
	a.cart.SetQuantity(ctx, productID, quantity)
	return a.Cart(ctx, "")
}

// RemoveFromCart drops a product from the cart.
func (a *App) RemoveFromCart(ctx context.Context, productID int64) (models.CartView, error) {
	a.cart.Remove(ctx, productID)
	return a.Cart(ctx, "")
}

// ClearCart empties the cart.
func (a *App) ClearCart(ctx context.Context) (models.CartView, error) {
	a.cart.Clear(ctx)
	return a.Cart(ctx, "")
}

// CartCount is the badge number: the sum of all quantities.
func (a *App) CartCount() int {
	return a.cart.Count()
}

// Cart re-resolves the cart and renders it with the given shipping option.
// An empty option selects the configured default.
func (a *App) Cart(ctx context.Context, shipping string) (models.CartView, error) {
	rate, err := a.shipping(shipping)
	if err != nil {
		return models.CartView{}, err
	}

	entries, products, err := a.resolve(ctx)
	if err != nil {
		return models.CartView{}, err
	}

	// Count every entry, resolved or not; totals only include resolved ones.
	count := 0
	for _, e := range entries {
		count += e.Quantity
	}
	return models.CartView{
		Lines:      cart.Lines(entries, products),
		Entries:    entries,
		TotalItems: count,
		Subtotal:   cart.TotalPrice(entries, products, decimal.Zero),
		Shipping:   rate,
		Total:      cart.TotalPrice(entries, products, rate),
	}, nil
}

// Checkout summarises the order. The cart is left as it is.
func (a *App) Checkout(ctx context.Context, shipping, address string) (models.Receipt, error) {
	rate, err := a.shipping(shipping)
	if err != nil {
		return models.Receipt{}, err
	}
	if a.cart.Count() == 0 {
		return models.Receipt{}, models.NewValidationError("cart", "Your cart is empty!")
	}
	if strings.TrimSpace(address) == "" {
		return models.Receipt{}, models.NewValidationError("address", "Please fill in your address!")
	}

	entries, products, err := a.resolve(ctx)
	if err != nil {
		return models.Receipt{}, err
	}
	return models.Receipt{
		Address:  address,
		Items:    cart.Lines(entries, products),
		Subtotal: cart.TotalPrice(entries, products, decimal.Zero),
		Shipping: rate,
		Total:    cart.TotalPrice(entries, products, rate),
	}, nil
}

// resolve re-resolves the current cart. If a newer pass overtakes this one,
// the newest published products are used with the current entries.
func (a *App) resolve(ctx context.Context) ([]models.CartEntry, map[int64]models.Product, error) {
	res, err := a.resolver.RefreshFrom(ctx, a.cart.Entries)
	switch {
	case errors.Is(err, latest.ErrSuperseded):
		return a.cart.Entries(), a.resolver.Latest().Products, nil
	case err != nil:
		return nil, nil, err
	}
	return res.Entries, res.Products, nil
}

func (a *App) refresh(ctx context.Context) {
	if _, err := a.resolver.RefreshFrom(ctx, a.cart.Entries); err != nil && !errors.Is(err, latest.ErrSuperseded) {
		a.logger.Warn("cart refresh failed", zap.Error(err))
	}
}

func (a *App) shipping(option string) (decimal.Decimal, error) {
	if option == "" {
		option = a.opts.DefaultShipping
	}
	return models.ShippingCost(option)
}
