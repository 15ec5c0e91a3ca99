package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Discard the cached snapshot and re-fetch",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := rootApp.opCtx(cmd.Context())
		defer cancel()

		t, err := rootApp.sess.Snapshot.ForceRefresh(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("再読み込みしました（%d 件）\n", t.Len())
		return nil
	},
}
