package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/storage"
	"github.com/conorfennell/flashdeck/internal/validate"
)

func newCardCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Oversee all cards without entering the menus",
	}
	cmd.AddCommand(newCardListCmd(e), newCardCreateCmd(e), newCardUpdateCmd(e), newCardDeleteCmd(e))
	return cmd
}

func newCardListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return e.db.WithTx(ctx, func(tx *storage.Tx) error {
				cards, err := tx.ListCards(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tFRONT\tBACK")
				for _, c := range cards {
					fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Front, c.Back)
				}
				return w.Flush()
			})
		},
	}
}

func newCardCreateCmd(e *env) *cobra.Command {
	var front, back string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := domain.NewCardInput(front, back)
			if err := validate.New().Struct(in); err != nil {
				return err
			}

			ctx := cmd.Context()
			return e.db.WithTx(ctx, func(tx *storage.Tx) error {
				id, err := tx.CreateCard(ctx, in.Card())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created card %d.\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&front, "front", "f", "", "the front of the card")
	cmd.Flags().StringVarP(&back, "back", "b", "", "the back of the card")
	_ = cmd.MarkFlagRequired("front")
	_ = cmd.MarkFlagRequired("back")
	return cmd
}

func newCardUpdateCmd(e *env) *cobra.Command {
	var id int64
	var front, back string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one or both sides of a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var frontPtr, backPtr *string
			if cmd.Flags().Changed("front") {
				frontPtr = &front
			}
			if cmd.Flags().Changed("back") {
				backPtr = &back
			}
			edit := domain.NewCardEdit(frontPtr, backPtr)
			if edit.Empty() {
				return errors.New("nothing to update: pass --front and/or --back")
			}
			if err := validate.New().Struct(edit); err != nil {
				return err
			}

			ctx := cmd.Context()
			return e.db.WithTx(ctx, func(tx *storage.Tx) error {
				n, err := tx.UpdateCard(ctx, id, edit.Front, edit.Back)
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Card %d does not exist.\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated card %d.\n", id)
				return nil
			})
		},
	}
	cmd.Flags().Int64VarP(&id, "id", "i", 0, "the id of the card")
	cmd.Flags().StringVarP(&front, "front", "f", "", "the new front of the card")
	cmd.Flags().StringVarP(&back, "back", "b", "", "the new back of the card")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCardDeleteCmd(e *env) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return e.db.WithTx(ctx, func(tx *storage.Tx) error {
				n, err := tx.DeleteCard(ctx, id)
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Card %d does not exist.\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %d.\n", id)
				return nil
			})
		},
	}
	cmd.Flags().Int64VarP(&id, "id", "i", 0, "the id of the card")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
