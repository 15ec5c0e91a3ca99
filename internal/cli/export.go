package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkawano/eyewear-stock/internal/store/csvfile"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current table to a CSV file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "inventory-export.csv", "output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := rootApp.opCtx(cmd.Context())
	defer cancel()

	t, err := rootApp.sess.Table(ctx)
	if t == nil {
		return err
	}
	if err := csvfile.New(exportOut).WriteAll(ctx, t); err != nil {
		return err
	}
	fmt.Printf("%d 件を %s に書き出しました\n", t.Len(), exportOut)
	return nil
}
