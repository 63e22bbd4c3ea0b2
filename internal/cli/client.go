package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientShowCmd)
	clientCmd.AddCommand(clientResetCmd)

	clientAddCmd.Flags().IntP("care-level", "l", 0, "Pflegegrad (0-5)")
	clientAddCmd.Flags().Float64P("entlastung", "e", domain.DefaultEntlastungsbudget, "§45b relief budget in EUR")
	clientAddCmd.Flags().Float64P("verhinderung", "v", domain.DefaultVerhinderungsbudget, "§39 respite budget in EUR")
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients and their budget depots",
}

// ─── client add ─────────────────────────────────────────────────────────────

var clientAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a new client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientAdd,
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	careLevel, _ := cmd.Flags().GetInt("care-level")
	entlastung, _ := cmd.Flags().GetFloat64("entlastung")
	verhinderung, _ := cmd.Flags().GetFloat64("verhinderung")

	db, reg, _, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := reg.Create(args[0], careLevel, entlastung, verhinderung)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Client %q registered with id %d (budget %.2f + %.2f EUR)\n",
		args[0], id, entlastung, verhinderung)
	return nil
}

// ─── client list ────────────────────────────────────────────────────────────

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients in creation order",
	RunE:  runClientList,
}

func runClientList(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintf(os.Stdout, "%-5s %-24s %-10s %12s %12s %12s\n",
		"ID", "NAME", "PFLEGEGRAD", "BUDGET", "VERWENDET", "REST")
	for _, c := range clients {
		marker := ""
		if c.OverBudget() {
			marker = "  !"
		}
		fmt.Fprintf(os.Stdout, "%-5d %-24s %-10d %12.2f %12.2f %12.2f%s\n",
			c.ID, c.Name, c.CareLevel, c.TotalBudget(), c.Verwendet, c.Remaining(), marker)
	}
	return nil
}

// ─── client show ────────────────────────────────────────────────────────────

var clientShowCmd = &cobra.Command{
	Use:   "show CLIENT_ID",
	Short: "Show a client's budget depot and events",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientShow,
}

func runClientShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid client id %q", args[0])
	}

	db, reg, led, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := reg.Get(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Client %d: %s (Pflegegrad %d)\n", c.ID, c.Name, c.CareLevel)
	fmt.Fprintf(os.Stdout, "  Entlastungsbudget:    %10.2f EUR\n", c.EntlastungsBudget)
	fmt.Fprintf(os.Stdout, "  Verhinderungsbudget:  %10.2f EUR\n", c.VerhinderungsBudget)
	fmt.Fprintf(os.Stdout, "  Verwendet:            %10.2f EUR\n", c.Verwendet)
	fmt.Fprintf(os.Stdout, "  Rest:                 %10.2f EUR\n", c.Remaining())
	if c.OverBudget() {
		fmt.Fprintln(os.Stdout, "  WARNING: consumption exceeds the combined budget ceiling")
	}

	events, err := led.EventsForClient(id)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stdout, "  No service events posted.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n  %-5s %-12s %-20s %8s %8s %10s\n", "ID", "DATE", "KIND", "HOURS", "RATE", "COST")
	for _, ev := range events {
		fmt.Fprintf(os.Stdout, "  %-5d %-12s %-20s %8.2f %8.2f %10.2f\n",
			ev.ID, ev.Date, ev.Kind, ev.Hours, ev.Rate, ev.Cost)
	}
	return nil
}

// ─── client reset ───────────────────────────────────────────────────────────

var clientResetCmd = &cobra.Command{
	Use:   "reset CLIENT_ID",
	Short: "Zero a client's consumption counter (history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientReset,
}

func runClientReset(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid client id %q", args[0])
	}

	db, _, led, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := led.ResetClientBudget(id); err != nil {
		return err
	}
	count, err := led.EventCount(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Budget depot of client %d reset. %d posted events remain in the ledger.\n", id, count)
	return nil
}
