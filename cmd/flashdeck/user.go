package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/flashdeck/internal/auth"
	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/storage"
)

func newUserCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserAddCmd(e))
	return cmd
}

func newUserAddCmd(e *env) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account; the password is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			io, closeIO := prompt.Open()
			defer closeIO()

			password, err := prompt.Password(io, "Password: ")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return e.db.WithTx(ctx, func(tx *storage.Tx) error {
				user, err := auth.Register(ctx, tx, username, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d).\n", user.Username, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "the new user's name")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
