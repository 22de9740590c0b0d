package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/storefront"
)

var (
	regInput auth.RegisterInput

	loginEmail    string
	loginPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			user, err := app.Register(ctx, regInput)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Please log in.\n", user.Email)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a bearer token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			user, token, err := app.Login(ctx, loginEmail, loginPassword)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"token": token, "user": user.Public()})
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *storefront.App) error {
			app.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		})
	},
}

func init() {
	registerCmd.Flags().StringVar(&regInput.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&regInput.LastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&regInput.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&regInput.Password, "password", "", "Password (at least 6 characters)")
	registerCmd.Flags().StringVar(&regInput.ConfirmPassword, "confirm-password", "", "Password again")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
}
