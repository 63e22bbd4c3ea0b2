package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportDailyCmd)
	reportCmd.AddCommand(reportRevenueCmd)
	reportCmd.AddCommand(reportBudgetsCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate reports over the billing ledger",
}

// ─── report daily ───────────────────────────────────────────────────────────

var reportDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Cost per calendar date, ascending",
	RunE:  runReportDaily,
}

func runReportDaily(cmd *cobra.Command, args []string) error {
	db, _, led, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	daily, err := led.AggregateByDate()
	if err != nil {
		return err
	}
	if len(daily) == 0 {
		fmt.Fprintln(os.Stdout, "No events posted yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s %12s\n", "DATE", "COST")
	for _, row := range daily {
		fmt.Fprintf(os.Stdout, "%-12s %12.2f\n", row.Date, row.TotalCost)
	}
	return nil
}

// ─── report revenue ─────────────────────────────────────────────────────────

var reportRevenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Total revenue with its threshold band",
	RunE:  runReportRevenue,
}

func runReportRevenue(cmd *cobra.Command, args []string) error {
	db, _, led, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	total, band, err := led.RevenueBand()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Total revenue: %.2f EUR\n", total)
	switch band {
	case domain.BandRed:
		fmt.Fprintln(os.Stdout, "Band: RED (high revenue, review postings)")
	case domain.BandYellow:
		fmt.Fprintln(os.Stdout, "Band: YELLOW (medium)")
	default:
		fmt.Fprintln(os.Stdout, "Band: GREEN (all clear)")
	}
	return nil
}

// ─── report budgets ─────────────────────────────────────────────────────────

var reportBudgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Per-client budget depot status",
	RunE:  runReportBudgets,
}

func runReportBudgets(cmd *cobra.Command, args []string) error {
	db, reg, _, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	clients, err := reg.List()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(os.Stdout, "No clients registered.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s %-24s %12s %12s %12s  %s\n",
		"ID", "NAME", "BUDGET", "VERWENDET", "REST", "STATUS")
	for _, c := range clients {
		st := c.Status()
		status := "ok"
		if st.OverBudget {
			status = "OVER BUDGET"
		}
		fmt.Fprintf(os.Stdout, "%-5d %-24s %12.2f %12.2f %12.2f  %s\n",
			st.ClientID, st.Name, st.TotalBudget, st.Verwendet, st.Remaining, status)
	}
	return nil
}
