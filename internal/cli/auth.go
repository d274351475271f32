package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Register(cmd.Context(), args[0], args[1], displayName); err != nil {
				return err
			}
			logger.Info("registered", "username", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&displayName, "display-name", "", "display name")
	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Sign in and store the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			token, err := c.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := saveToken(token); err != nil {
				return err
			}
			logger.Info("signed in", "username", args[0])
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				logger.Debug("server logout failed", "err", err)
			}
			if err := saveToken(""); err != nil {
				return err
			}
			logger.Info("signed out")
			return nil
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			user, err := c.Me(cmd.Context())
			if err != nil {
				return signInHint(err, "view your profile")
			}
			fmt.Printf("%s (#%d) role=%s display=%q\n", user.Username, user.ID, user.Role, user.DisplayName)
			return nil
		},
	}
}
