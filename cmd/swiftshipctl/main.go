package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/swiftship/internal/app"
	"github.com/erazemk/swiftship/internal/config"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/store"
)

var (
	envFile string
	dbPath  string
	asEmail string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "swiftshipctl",
	Short: "SwiftShip operator CLI",
	Long: "swiftshipctl manages a SwiftShip database directly: accounts, invitations,\n" +
		"package statuses and the rate table. Changes are announced to running\n" +
		"servers when SWIFTSHIP_REDIS_ADDR is set.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "dotenv file with SWIFTSHIP_* settings")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (overrides SWIFTSHIP_DB)")
	rootCmd.PersistentFlags().StringVar(&asEmail, "as", "", "admin email to act as (default: SWIFTSHIP_ADMIN_EMAIL)")

	// Accounts
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(suiteCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(inviteCmd)

	// Packages
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(trackCmd)

	// Rates
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(estimateCmd)
}

// boot loads configuration and opens the database.
func boot() (*app.App, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return app.New(cfg)
}

// operator returns the admin account the command acts as.
func operator(cmd *cobra.Command, a *app.App) (*model.Account, error) {
	email := asEmail
	if email == "" {
		email = a.Config.AdminEmail
	}
	acct, err := store.GetAccountByEmail(cmd.Context(), a.DB, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if acct == nil || !acct.IsAdmin() {
		return nil, fmt.Errorf("%s is not an admin account (use --as)", email)
	}
	return acct, nil
}
