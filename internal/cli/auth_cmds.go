package cli

import (
	"errors"
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/jober-app/go-alimtalk-client/api"
	"github.com/jober-app/go-alimtalk-client/session"
	"github.com/spf13/cobra"
)

func (a *App) loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and select your first space",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client.Login(cmd.Context(), api.LoginRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				if api.StatusOf(err) == 401 {
					return fmt.Errorf("wrong username or password")
				}
				return err
			}

			a.store.Login(session.User{UserID: user.UserID, Username: user.Username})
			if err := a.store.FetchSpaces(cmd.Context()); err != nil {
				return err
			}

			figure.NewFigure(a.cfg.AppName, "cybermedium", true).Print()
			fmt.Println()
			fmt.Printf("Logged in as %s\n", user.Username)
			a.printSpaces()
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.Logout(cmd.Context())
			fmt.Println("Logged out")
			return nil
		},
	}
}

func (a *App) registerCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.CheckUserID(cmd.Context(), username); err != nil {
				if api.IsDuplicateErr(err) {
					return fmt.Errorf("username %q is taken", username)
				}
				return err
			}
			if err := a.client.CheckEmail(cmd.Context(), email); err != nil {
				if api.IsDuplicateErr(err) {
					return fmt.Errorf("email %q is already registered", email)
				}
				return err
			}
			if err := a.client.Register(cmd.Context(), api.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
			}); err != nil {
				if api.IsDuplicateErr(err) {
					return fmt.Errorf("username or email already registered")
				}
				return err
			}
			fmt.Println("Account created. Run `alimtalk login` to sign in.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "desired username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *App) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the account",
	}

	var confirmed bool
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account and log out",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if !confirmed {
				return errors.New("pass --yes to confirm account deletion")
			}
			if err := a.store.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Account deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")

	var email string
	resetCmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request a password-reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.RequestPasswordReset(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Println("Reset email sent if the address is registered")
			return nil
		},
	}
	resetCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	_ = resetCmd.MarkFlagRequired("email")

	validateCmd := &cobra.Command{
		Use:   "validate-token <token>",
		Short: "Check a password-reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.ValidateResetToken(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("token is invalid or expired")
			}
			fmt.Println("Token is valid")
			return nil
		},
	}

	cmd.AddCommand(deleteCmd, resetCmd, validateCmd)
	return cmd
}
