package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkawano/eyewear-stock/internal/inventory"
)

var noteCmd = &cobra.Command{
	Use:   "note <id> <text...>",
	Short: "Set an item's memo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNote,
}

func runNote(cmd *cobra.Command, args []string) error {
	ctx, cancel := rootApp.opCtx(cmd.Context())
	defer cancel()

	text := strings.Join(args[1:], " ")
	rec, err := rootApp.sess.Inventory.SetNote(ctx, inventory.ByID(args[0]), text)
	if err != nil {
		return err
	}
	fmt.Printf("ID %s のメモを更新しました: %q\n", rec.ID, rec.Note)
	return nil
}
