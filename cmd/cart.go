// ABOUTME: Cart commands: list, add, rm, buy
// ABOUTME: Scriptable cart operations sharing the TUI's client plumbing

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

var cartBuyCount int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Work with the shopping cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cart items",
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, e *env, w io.Writer) int {
			purchases, err := e.client.ListPurchases(ctx, client.StatusInCart)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			if IsJSONOutput() {
				data, _ := json.MarshalIndent(purchases, "", "  ")
				fmt.Fprintln(w, string(data))
				return 0
			}
			if len(purchases) == 0 {
				fmt.Fprintln(w, "Cart is empty")
				return 0
			}
			total := 0
			for _, p := range purchases {
				fmt.Fprintf(w, "%-24s  %-40s x%-3d %10s\n",
					p.ID, styles.Truncate(p.Product.Name, 40), p.BuyCount,
					styles.FormatCurrency(p.Price*p.BuyCount))
				total += p.Price * p.BuyCount
			}
			fmt.Fprintf(w, "\nTotal: %s\n", styles.FormatCurrency(total))
			return 0
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, e *env, w io.Writer) int {
			purchase, err := e.client.AddToCart(ctx, args[0], cartBuyCount)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			fmt.Fprintf(w, "Added %s x%d\n", purchase.Product.Name, purchase.BuyCount)
			return 0
		})
	},
}

var cartRmCmd = &cobra.Command{
	Use:   "rm <purchase-id>...",
	Short: "Remove one or more cart items",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, e *env, w io.Writer) int {
			count, err := e.client.DeletePurchases(ctx, args)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			fmt.Fprintf(w, "Deleted %d item(s)\n", count)
			return 0
		})
	},
}

var cartBuyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy everything currently in the cart",
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, e *env, w io.Writer) int {
			purchases, err := e.client.ListPurchases(ctx, client.StatusInCart)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			if len(purchases) == 0 {
				fmt.Fprintln(w, "Cart is empty")
				return 0
			}
			orders := make([]client.Order, 0, len(purchases))
			for _, p := range purchases {
				orders = append(orders, client.Order{ProductID: p.Product.ID, BuyCount: p.BuyCount})
			}
			message, bought, err := e.client.BuyProducts(ctx, orders)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			if message == "" {
				message = fmt.Sprintf("Bought %d item(s)", len(bought))
			}
			fmt.Fprintln(w, message)
			return 0
		})
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRmCmd)
	cartCmd.AddCommand(cartBuyCmd)

	cartAddCmd.Flags().IntVar(&cartBuyCount, "count", 1, "Quantity to add")
}

// runCartCommand handles the shared setup and auth gate for cart
// subcommands, then exits with the handler's code.
func runCartCommand(fn func(context.Context, *env, io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	e, err := newEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer debuglog.Close()

	if !e.sessions.Current().IsAuthenticated {
		fmt.Fprintln(os.Stderr, "Not logged in (run: shopctl login)")
		os.Exit(1)
	}

	if code := fn(ctx, e, os.Stdout); code != 0 {
		os.Exit(code)
	}
}
