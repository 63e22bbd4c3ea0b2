// Package cli implements the pflegedesk command-line interface.
// The serve command runs the daemon; every other command opens the
// storage directly and drives the registry/ledger services in-process.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pflegedesk/pflegedesk/internal/app/ledger"
	"github.com/pflegedesk/pflegedesk/internal/app/registry"
	"github.com/pflegedesk/pflegedesk/internal/daemon"
	"github.com/pflegedesk/pflegedesk/internal/infra/sqlite"
)

var flagDataDir string

var rootCmd = &cobra.Command{
	Use:   "pflegedesk",
	Short: "Home-care administration: clients, billing, budget depots",
	Long: `pflegedesk manages a home-care agency's clients, caregivers, and
billable service visits. Each client carries two statutory entitlement
budgets (§45b Entlastungsbetrag, §39 Verhinderungspflege); every posting
debits the shared consumption counter in one transaction.`,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Storage directory (default ~/.pflegedesk)")
}

// openServices opens the store and wires the two core services.
// The caller must Close the returned DB.
func openServices() (*sqlite.DB, *registry.Registry, *ledger.Ledger, error) {
	dir := flagDataDir
	if dir == "" {
		cfg, err := daemon.Load()
		if err != nil {
			return nil, nil, nil, err
		}
		dir = cfg.Storage.Dir
	}

	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	reg := registry.New(db)
	return db, reg, ledger.New(db, reg), nil
}
