package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkawano/eyewear-stock/internal/inventory"
	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/schema"
)

var transferTo string

var transferCmd = &cobra.Command{
	Use:   "transfer <id>",
	Short: "Move an item between the two stores",
	Long: `Move an item to the other store (ニコメ ⇄ マトイ), recording the
source, destination and transfer date. Without --to the item moves to the
opposite store.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransfer,
}

func init() {
	transferCmd.Flags().StringVar(&transferTo, "to", "", "destination store (default: the other one)")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	ctx, cancel := rootApp.opCtx(cmd.Context())
	defer cancel()

	// Look the item up first to learn its current store.
	t, err := rootApp.sess.Table(ctx)
	if t == nil {
		return err
	}
	s, err := schema.New(t.Headers)
	if err != nil {
		return err
	}
	idx := s.FindByID(t, args[0])
	if idx < 0 {
		return fmt.Errorf("%w: id %q", inventory.ErrNotFound, args[0])
	}
	cur := s.Record(idx, t.Rows[idx])

	from := cur.Store
	to := from.Other()
	if transferTo != "" {
		to = model.Store(transferTo)
	}

	rec, err := rootApp.sess.Inventory.Transfer(ctx, inventory.ByIndex(idx), from, to)
	if err != nil {
		return err
	}
	fmt.Printf("ID %s を %s へ移動しました（移動日: %s）\n", rec.ID, rec.Store, rec.TransferDate)
	return nil
}
