package catalog

import (
	"sort"
	"strings"

	"github.com/gosimple/slug"

	"github.com/01moynul/storefront-golang/internal/models"
)

const (
	// AllCategories selects every category.
	AllCategories = "All"
	// PageSize is the number of products on one browse page.
	PageSize = 8

	similarLimit = 4
	topLimit     = 8
)

// Query filters a browse listing. Page is 1-based.
type Query struct {
	Category string
	Term     string
	Page     int
}

// Categories returns "All" followed by every distinct category in
// first-seen order.
func Categories(products []models.Product) []string {
	seen := make(map[string]bool)
	categories := []string{AllCategories}
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// Browse filters products by category and title term and returns the
// requested page. A page below 1 is treated as 1; a page past the end is
// empty.
func Browse(products []models.Product, q Query) models.ProductPage {
	filtered := Filter(products, q.Category, q.Term)

	page := q.Page
	if page < 1 {
		page = 1
	}
	totalPages := (len(filtered) + PageSize - 1) / PageSize

	// Compare pages before multiplying so huge page numbers cannot overflow.
	start := len(filtered)
	if page <= totalPages {
		start = (page - 1) * PageSize
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return models.ProductPage{
		Products:   append([]models.Product{}, filtered[start:end]...),
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	}
}

// Filter keeps products in category (empty or "All" keeps everything) whose
// title contains term, ignoring case. A blank term matches every title; any
// other term is matched as typed, surrounding spaces included.
func Filter(products []models.Product, category, term string) []models.Product {
	wantCategory := ""
	if category != "" && !strings.EqualFold(category, AllCategories) {
		wantCategory = slug.Make(category)
	}
	matchTerm := strings.TrimSpace(term) != ""
	term = strings.ToLower(term)

	out := []models.Product{}
	for _, p := range products {
		if wantCategory != "" && slug.Make(p.Category) != wantCategory {
			continue
		}
		if matchTerm && !strings.Contains(strings.ToLower(p.Title), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Similar returns up to four other products of the same category.
func Similar(products []models.Product, category string, excludeID int64) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if p.Category != category || p.ID == excludeID {
			continue
		}
		out = append(out, p)
		if len(out) == similarLimit {
			break
		}
	}
	return out
}

// TopRated returns the eight best rated products.
func TopRated(products []models.Product) []models.Product {
	return topBy(products, func(a, b models.Product) bool { return a.Rating > b.Rating })
}

// BiggestSales returns the eight most discounted products.
func BiggestSales(products []models.Product) []models.Product {
	return topBy(products, func(a, b models.Product) bool { return a.DiscountPercentage > b.DiscountPercentage })
}

func topBy(products []models.Product, less func(a, b models.Product) bool) []models.Product {
	sorted := append([]models.Product{}, products...)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > topLimit {
		sorted = sorted[:topLimit]
	}
	return sorted
}
