package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkawano/eyewear-stock/internal/query"
)

var (
	searchID    string
	searchModel string
	searchColor string
	searchStore string
	searchAll   bool
	searchFavs  []string
	searchOnly  []string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the inventory",
	Long:  "Search by ID / model / color substring, store and status, favorites first.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchID, "id", "", "ID substring")
	searchCmd.Flags().StringVar(&searchModel, "model", "", "model substring")
	searchCmd.Flags().StringVar(&searchColor, "color", "", "color substring")
	searchCmd.Flags().StringVar(&searchStore, "store", string(query.StoreBoth), "ニコメ, マトイ or 両方")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "include sold/staff/returned/discarded items")
	searchCmd.Flags().StringSliceVar(&searchFavs, "fav", nil, "favorite brands, listed first")
	searchCmd.Flags().StringSliceVar(&searchOnly, "brand", nil, "restrict to these brands")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := rootApp.opCtx(cmd.Context())
	defer cancel()

	for _, b := range searchFavs {
		rootApp.sess.AddFavorite(b)
	}
	if len(searchOnly) > 0 {
		rootApp.sess.SetAllowed(searchOnly)
	}

	res, err := rootApp.sess.Search(ctx, query.Filter{
		ShowAll:       searchAll,
		Store:         query.StoreFilter(searchStore),
		IDContains:    searchID,
		ModelContains: searchModel,
		ColorContains: searchColor,
	})
	if err != nil {
		return err
	}

	if searchAll {
		fmt.Printf("表示: %d 件（全体在庫: %d 件）\n", res.TotalMatches, res.InStockTotal)
	} else {
		fmt.Printf("在庫あり: %d 件\n", res.TotalMatches)
	}
	if res.Truncated {
		fmt.Printf("200件以上のため最初の%d件を表示します。検索条件を絞ってください。\n", query.ResultLimit)
	}

	favs := rootApp.sess.Favorites()
	for _, r := range res.Records {
		star := "  "
		if favs[r.Brand] {
			star = "⭐"
		}
		sold := ""
		if r.SoldYear != 0 {
			sold = fmt.Sprintf(" 売上 %d/%d", r.SoldYear, r.SoldMonth)
		}
		fmt.Printf("%s %-8s %-12s %-24s %-12s %-4s %8s %8s %s%s\n",
			star, r.ID, r.Brand, r.Model, r.Color, r.Store,
			r.Wholesale.Format(), r.RetailInclTax.Format(),
			r.Flag.Label(), sold)
	}
	return nil
}
