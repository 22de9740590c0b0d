package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/storefront"
)

var (
	browseQuery  catalog.Query
	topRated     bool
	biggestSales bool
)

var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Print search suggestions for a term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			products, err := app.Suggest(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, products)
		})
	},
}

var productsCmd = &cobra.Command{
	Use:   "products [PRODUCT_ID]",
	Short: "Browse the catalog, or show one product and similar ones",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			if len(args) == 1 {
				id, err := parseProductID(args[0])
				if err != nil {
					return err
				}
				product, err := app.Product(ctx, id)
				if err != nil {
					return err
				}
				similar, err := app.Similar(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]any{
					"product":  product,
					"similar":  similar,
					"comments": app.Comments(ctx, id),
				})
			}

			switch {
			case topRated:
				products, err := app.TopRated(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, products)
			case biggestSales:
				products, err := app.BiggestSales(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, products)
			}

			page, err := app.Products(ctx, browseQuery)
			if err != nil {
				return err
			}
			return printJSON(cmd, page)
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the catalog categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			categories, err := app.Categories(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, categories)
		})
	},
}

func init() {
	productsCmd.Flags().StringVar(&browseQuery.Category, "category", "", "Only this category")
	productsCmd.Flags().StringVarP(&browseQuery.Term, "query", "q", "", "Title must contain this text")
	productsCmd.Flags().IntVar(&browseQuery.Page, "page", 1, "Page number")
	productsCmd.Flags().BoolVar(&topRated, "top-rated", false, "Show the eight best rated products")
	productsCmd.Flags().BoolVar(&biggestSales, "biggest-sales", false, "Show the eight biggest discounts")

	productsCmd.AddCommand(categoriesCmd)
}
