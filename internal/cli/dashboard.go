package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkawano/eyewear-stock/internal/dashboard"
	"github.com/mkawano/eyewear-stock/internal/model"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show stock and sales aggregates",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := rootApp.opCtx(cmd.Context())
	defer cancel()

	t, err := rootApp.sess.Table(ctx)
	if t == nil {
		return err
	}
	recs, err := dashboard.Build(t)
	if err != nil {
		return err
	}

	sum := dashboard.Summarize(recs)
	fmt.Println("== 在庫・売上ダッシュボード ==")
	fmt.Printf("総データ数 %d ｜ 在庫あり %d ｜ 売上済み %d ｜ スタッフ用 %d ｜ 返品 %d ｜ 破棄 %d\n\n",
		sum.Total, sum.InStock, sum.Sold, sum.StaffUse, sum.Returned, sum.Discarded)

	stock := dashboard.StockByStore(recs)
	sold := dashboard.SoldByStore(recs)
	fmt.Println("店舗別:")
	for _, s := range model.Stores {
		fmt.Printf("  %-4s 在庫 %3d ｜ 売上 %3d\n", s, stock[s], sold[s])
	}

	fmt.Println("\nブランド別 在庫数 TOP20:")
	for _, bc := range dashboard.TopBrands(recs, 20) {
		fmt.Printf("  %-20s %d\n", bc.Brand, bc.Count)
	}

	year := time.Now().Year()
	monthly := dashboard.MonthlySold(recs, year)
	fmt.Printf("\n月別 売上数（%d年）:\n", year)
	for m, n := range monthly {
		if n > 0 {
			fmt.Printf("  %2d月 %d\n", m+1, n)
		}
	}

	history, err := dashboard.TransferHistory(t)
	if err != nil {
		return err
	}
	fmt.Printf("\n移動履歴（%d 件、新しい順）:\n", len(history))
	for i, r := range history {
		if i == 10 {
			fmt.Println("  ...")
			break
		}
		fmt.Printf("  %s  %-8s %-12s %-24s %s → %s\n",
			r.TransferDate, r.ID, r.Brand, r.Model, r.TransferFrom, r.TransferTo)
	}
	return nil
}
