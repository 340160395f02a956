package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and the first admin account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := a.EnsureAdmin(cmd.Context())
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("database %s already has an admin account", a.Config.DBPath)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database ready: %s\n\n", a.Config.DBPath)
		fmt.Fprintln(out, "Admin account created:")
		fmt.Fprintf(out, "  Email:    %s\n", a.Config.AdminEmail)
		fmt.Fprintf(out, "  Password: %s\n\n", password)
		fmt.Fprintln(out, "Save this password, it cannot be recovered.")
		return nil
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List every account",
	Args:  cobra.NoArgs,
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
		accounts, err := a.Accounts.List(cmd.Context(), actor)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSUITE\tVERIFIED")
		for _, acct := range accounts {
			suite := acct.SuiteNumber
			if suite == "" {
				suite = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n", acct.ID, acct.Name, acct.Email, acct.Role, suite, acct.Verified)
		}
		return w.Flush()
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <account-id>",
	Short: "Mark an account's email as verified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}

		a, err := boot()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Accounts.Verify(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account %d verified.\n", id)
		return nil
	},
}

var inviteCmd = &cobra.Command{
	Use:   "invite <email>",
	Short: "Create an admin invitation and email the code",
	Args:  cobra.ExactArgs(1),
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
		inv, err := a.Accounts.CreateInvitation(cmd.Context(), actor, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Invitation for %s\n", inv.Email)
		fmt.Fprintf(out, "  Code:    %s\n", inv.Code)
		fmt.Fprintf(out, "  Expires: %s\n", inv.ExpiresAt.Format("2006-01-02 15:04 MST"))
		return nil
	},
}

var suiteCmd = &cobra.Command{
	Use:   "suite <number>",
	Short: "Find the customer a suite number belongs to",
	Args:  cobra.ExactArgs(1),
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
		entry, err := a.Accounts.LookupSuite(cmd.Context(), actor, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (account %d)\n", entry.SuiteNumber, entry.Name, entry.AccountID)
		return nil
	},
}
