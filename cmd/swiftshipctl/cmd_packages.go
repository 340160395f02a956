package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/swiftship/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status <package-id> <status>",
	Short: "Move a package to a pipeline status",
	Long: "Move a package to one of: " + strings.Join(model.Statuses, ", ") + ".\n" +
		"Quote multi-word statuses, e.g. swiftshipctl status 12 \"In Transit\".",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid package id %q", args[0])
		}

		a, err := boot()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := operator(cmd, a)
		if err != nil {
			return err
		}
		pkg, err := a.Ledger.UpdateStatus(cmd.Context(), actor, id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Package %d (%s) is now %s.\n", pkg.ID, pkg.TrackingNumber, pkg.Status)
		return nil
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <tracking-number|package-id>",
	Short: "Show the public tracking view of a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := a.Ledger.FindByTracking(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s from %s (package %d)\n", view.TrackingNumber, view.Merchant, view.ID)
		for i, step := range view.Steps {
			mark := "[ ]"
			if i <= view.Step {
				mark = "[x]"
			}
			fmt.Fprintf(out, "  %s %s\n", mark, step)
		}
		fmt.Fprintf(out, "Updated %s\n", view.UpdatedAt.Format("2006-01-02 15:04 MST"))
		return nil
	},
}
