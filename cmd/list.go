package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kola-market/market-cli/internal/model"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List configured regions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := loadStore(cmd)
		if err != nil {
			return err
		}

		w := os.Stdout
		fmt.Fprintf(w, "%-12s %-18s %12s %-12s %s\n",
			"Region", "Type", "Population", "Income", "Dominant Work")
		fmt.Fprintln(w, strings.Repeat("-", 80))
		for _, r := range store.Regions() {
			fmt.Fprintf(w, "%-12s %-18s %12d %-12s %s\n",
				r.Name, r.Type, r.Population, r.IncomeLevel,
				strings.Join(r.DominantWork, ", "))
		}
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List configured products",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := loadStore(cmd)
		if err != nil {
			return err
		}

		w := os.Stdout
		fmt.Fprintf(w, "%-22s %-25s %-20s %8s %8s %8s %s\n",
			"ID", "Name", "Category", "Cost", "Sell", "Margin", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 105))
		for _, p := range store.Products() {
			source := "local"
			if p.ImportDependent {
				source = "import"
			}
			fmt.Fprintf(w, "%-22s %-25s %-20s %8.2f %8.2f %7.0f%% %s\n",
				p.ID, p.Name, model.DisplayName(p.Category),
				p.CostPrice, p.SellingPrice, p.ProfitMargin()*100, source)
		}
		return nil
	},
}

func init() {
	regionsCmd.Flags().String("data", "", "dataset file path (default: bundled dataset)")
	productsCmd.Flags().String("data", "", "dataset file path (default: bundled dataset)")
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(productsCmd)
}
