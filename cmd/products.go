// ABOUTME: Products command listing the catalogue from the terminal
// ABOUTME: Supports the full filter set the products endpoint accepts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/tui/debuglog"
	"github.com/dontuty123/shopctl/internal/tui/styles"
)

var productQuery client.ProductQuery

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	Long:  `List products with optional search, category, price and rating filters.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProducts(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.Flags().IntVar(&productQuery.Page, "page", 1, "Page number")
	productsCmd.Flags().IntVar(&productQuery.Limit, "limit", 10, "Items per page")
	productsCmd.Flags().StringVar(&productQuery.Name, "name", "", "Search by name")
	productsCmd.Flags().StringVar(&productQuery.Category, "category", "", "Category id")
	productsCmd.Flags().StringVar(&productQuery.SortBy, "sort-by", "createdAt", "Sort key: createdAt, view, sold, price")
	productsCmd.Flags().StringVar(&productQuery.Order, "order", "desc", "Sort order: asc, desc")
	productsCmd.Flags().IntVar(&productQuery.PriceMin, "price-min", 0, "Minimum price")
	productsCmd.Flags().IntVar(&productQuery.PriceMax, "price-max", 0, "Maximum price")
	productsCmd.Flags().IntVar(&productQuery.RatingFilter, "rating", 0, "Minimum rating")
}

// runProducts fetches and prints the listing, returning an exit code
func runProducts(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer debuglog.Close()

	list, err := e.client.ListProducts(ctx, productQuery)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(list, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	for _, p := range list.Products {
		fmt.Fprintf(w, "%-24s  %-44s %10s  sold %d\n",
			p.ID, styles.Truncate(p.Name, 44), styles.FormatCurrency(p.Price), p.Sold)
	}
	fmt.Fprintf(w, "\npage %d/%d\n", list.Pagination.Page, list.Pagination.PageSize)
	return 0
}
