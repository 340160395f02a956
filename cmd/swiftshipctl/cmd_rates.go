package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erazemk/swiftship/internal/rates"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show or change the rate table",
}

var ratesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active rate table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.Close()

		cfg, err := a.Rates.Current(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "base per lb\t$%.2f\n", cfg.BasePerLb)
		fmt.Fprintf(w, "processing fee\t$%.2f\n", cfg.ProcessingFee)
		fmt.Fprintf(w, "insurance rate\t%.2f%%\n", cfg.InsuranceRate*100)
		for _, cat := range cfg.Categories() {
			fmt.Fprintf(w, "duty %s\t%.2f%%\n", cat, cfg.DutyRates[cat]*100)
		}
		return w.Flush()
	},
}

var (
	setBase       float64
	setProcessing float64
	setInsurance  float64
	setDuties     []string
)

var ratesSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change rate table values",
	Long: "Change rate table values. Unset flags keep their current value.\n" +
		"Duty rates are fractions: --duty electronics=0.2 --duty toys=0.12",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := operator(cmd, a)
		if err != nil {
			return err
		}
		cfg, err := a.Rates.Current(cmd.Context())
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("base") {
			cfg.BasePerLb = setBase
		}
		if flags.Changed("processing") {
			cfg.ProcessingFee = setProcessing
		}
		if flags.Changed("insurance") {
			cfg.InsuranceRate = setInsurance
		}
		for _, d := range setDuties {
			cat, raw, ok := strings.Cut(d, "=")
			if !ok {
				return fmt.Errorf("invalid duty %q, want category=rate", d)
			}
			rate, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid duty rate for %s: %w", cat, err)
			}
			cfg.DutyRates[cat] = rate
		}

		if _, err := a.Rates.Update(cmd.Context(), actor, cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Rates updated.")
		return nil
	},
}

var (
	estWeight   float64
	estCategory string
	estValue    float64
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate shipping, processing and duty for a parcel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.Close()

		q, err := a.Rates.Estimate(cmd.Context(), rates.Input{
			WeightLb:      estWeight,
			Category:      estCategory,
			DeclaredValue: estValue,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "shipping\t$%.2f\t\n", q.ShippingFee)
		fmt.Fprintf(w, "processing\t$%.2f\t\n", q.ProcessingFee)
		fmt.Fprintf(w, "duty (%s)\t$%.2f\t\n", q.Category, q.DutyAmount)
		fmt.Fprintf(w, "total\t$%.2f\t\n", q.Total)
		fmt.Fprintf(w, "insurance (optional)\t$%.2f\t\n", q.Insurance)
		return w.Flush()
	},
}

func init() {
	ratesCmd.AddCommand(ratesShowCmd)
	ratesCmd.AddCommand(ratesSetCmd)

	ratesSetCmd.Flags().Float64Var(&setBase, "base", 0, "shipping rate per lb in USD")
	ratesSetCmd.Flags().Float64Var(&setProcessing, "processing", 0, "flat processing fee in USD")
	ratesSetCmd.Flags().Float64Var(&setInsurance, "insurance", 0, "insurance rate as a fraction of declared value")
	ratesSetCmd.Flags().StringArrayVar(&setDuties, "duty", nil, "duty rate per category, category=rate (repeatable)")

	estimateCmd.Flags().Float64VarP(&estWeight, "weight", "w", 1, "weight in lb")
	estimateCmd.Flags().StringVarP(&estCategory, "category", "c", "general", "goods category")
	estimateCmd.Flags().Float64VarP(&estValue, "value", "v", 0, "declared value in USD")
}
