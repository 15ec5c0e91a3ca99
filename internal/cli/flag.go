package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkawano/eyewear-stock/internal/inventory"
	"github.com/mkawano/eyewear-stock/internal/model"
)

var (
	flagYear  int
	flagMonth int
)

// statusNames maps CLI-friendly names to flags. The raw symbols are
// accepted too.
var statusNames = map[string]model.StatusFlag{
	"stock":     model.FlagInStock,
	"sold":      model.FlagSold,
	"staff":     model.FlagStaffUse,
	"returned":  model.FlagReturned,
	"discarded": model.FlagDiscarded,
	"〇":         model.FlagSold,
	"△":         model.FlagStaffUse,
	"▲":         model.FlagReturned,
	"×":         model.FlagDiscarded,
}

var flagCmd = &cobra.Command{
	Use:   "flag <id> <stock|sold|staff|returned|discarded>",
	Short: "Change an item's status flag",
	Long: `Change an item's status flag. Marking an item sold records the sale
year/month (current date unless --year/--month are given); any other flag
clears them.`,
	Args: cobra.ExactArgs(2),
	RunE: runFlag,
}

func init() {
	flagCmd.Flags().IntVar(&flagYear, "year", 0, "sale year (sold only)")
	flagCmd.Flags().IntVar(&flagMonth, "month", 0, "sale month (sold only)")
}

func runFlag(cmd *cobra.Command, args []string) error {
	status, ok := statusNames[args[1]]
	if !ok {
		return fmt.Errorf("unknown status %q", args[1])
	}

	ctx, cancel := rootApp.opCtx(cmd.Context())
	defer cancel()

	rec, err := rootApp.sess.Inventory.SetFlag(ctx, inventory.ByID(args[0]), status, flagYear, flagMonth)
	if err != nil {
		return err
	}
	fmt.Printf("ID %s → %s に更新しました\n", rec.ID, rec.Flag.Label())
	return nil
}
