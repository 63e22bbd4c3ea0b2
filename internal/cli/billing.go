package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

func init() {
	rootCmd.AddCommand(billingCmd)
	billingCmd.AddCommand(billingPostCmd)
	billingCmd.AddCommand(billingListCmd)

	billingPostCmd.Flags().Int64P("client", "c", 0, "Client id (required)")
	billingPostCmd.Flags().Int64P("caregiver", "g", 0, "Caregiver id (optional)")
	billingPostCmd.Flags().String("date", "", "Visit date YYYY-MM-DD (default today)")
	billingPostCmd.Flags().StringP("kind", "k", string(domain.KindHouseholdHelp),
		"Service kind: grocery-assistance|medical-escort|household-help|respite-care|short-term-care")
	billingPostCmd.Flags().Float64P("hours", "H", 1, "Hours worked (0.25 steps in the form UI)")
	billingPostCmd.Flags().Float64P("rate", "r", 25.0, "Hourly rate in EUR")
	_ = billingPostCmd.MarkFlagRequired("client")

	billingListCmd.Flags().Int64P("client", "c", 0, "Only this client's events")
}

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Post and inspect billing events",
}

// ─── billing post ───────────────────────────────────────────────────────────

var billingPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a service event and debit the client's depot",
	Long: `Record one billable visit. The event append and the budget debit
commit in a single transaction; the cost is always hours times rate.`,
	RunE: runBillingPost,
}

func runBillingPost(cmd *cobra.Command, args []string) error {
	clientID, _ := cmd.Flags().GetInt64("client")
	caregiverID, _ := cmd.Flags().GetInt64("caregiver")
	date, _ := cmd.Flags().GetString("date")
	kind, _ := cmd.Flags().GetString("kind")
	hours, _ := cmd.Flags().GetFloat64("hours")
	rate, _ := cmd.Flags().GetFloat64("rate")

	db, _, led, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	req := domain.PostRequest{
		ClientID: clientID,
		Date:     date,
		Kind:     domain.ServiceKind(kind),
		Hours:    hours,
		Rate:     rate,
	}
	if caregiverID != 0 {
		req.CaregiverID = &caregiverID
	}

	ev, err := led.PostEvent(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Posted event %d: %s on %s, %.2fh x %.2f EUR = %.2f EUR (receipt %s)\n",
		ev.ID, ev.Kind, ev.Date, ev.Hours, ev.Rate, ev.Cost, ev.Receipt)
	return nil
}

// ─── billing list ───────────────────────────────────────────────────────────

var billingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posted events",
	RunE:  runBillingList,
}

func runBillingList(cmd *cobra.Command, args []string) error {
	clientID, _ := cmd.Flags().GetInt64("client")

	db, _, led, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	var events []domain.ServiceEvent
	if clientID != 0 {
		events, err = led.EventsForClient(clientID)
	} else {
		events, err = led.Events()
	}
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stdout, "No events posted.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s %-7s %-12s %-20s %8s %8s %10s\n",
		"ID", "CLIENT", "DATE", "KIND", "HOURS", "RATE", "COST")
	for _, ev := range events {
		fmt.Fprintf(os.Stdout, "%-5d %-7d %-12s %-20s %8.2f %8.2f %10.2f\n",
			ev.ID, ev.ClientID, ev.Date, ev.Kind, ev.Hours, ev.Rate, ev.Cost)
	}
	return nil
}
