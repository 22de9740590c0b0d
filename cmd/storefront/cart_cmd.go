package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/01moynul/storefront-golang/internal/storefront"
)

var cartShipping string

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and change the cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart with totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			view, err := app.Cart(ctx, cartShipping)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID",
	Short: "Add one unit of a product (requires login)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			view, err := app.AddToCart(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		})
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set PRODUCT_ID QUANTITY",
	Short: "Set the quantity of a product in the cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			view, err := app.SetQuantity(ctx, id, qty)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			view, err := app.RemoveFromCart(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			view, err := app.ClearCart(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		})
	},
}

func init() {
	cartShowCmd.Flags().StringVar(&cartShipping, "shipping", "", "Shipping option: standard or express")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}
