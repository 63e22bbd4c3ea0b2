package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(caregiverCmd)
	caregiverCmd.AddCommand(caregiverAddCmd)
	caregiverCmd.AddCommand(caregiverListCmd)
	caregiverCmd.AddCommand(caregiverVacationCmd)

	caregiverAddCmd.Flags().StringP("qualification", "q", "", "Qualification, e.g. Pflegefachkraft")
	caregiverVacationCmd.Flags().Float64("days", 1, "Vacation days to record")
}

var caregiverCmd = &cobra.Command{
	Use:   "caregiver",
	Short: "Manage the staff directory",
}

var caregiverAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a caregiver",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaregiverAdd,
}

func runCaregiverAdd(cmd *cobra.Command, args []string) error {
	quali, _ := cmd.Flags().GetString("qualification")

	db, reg, _, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := reg.AddCaregiver(args[0], quali)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Caregiver %q registered with id %d\n", args[0], id)
	return nil
}

var caregiverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List caregivers",
	RunE:  runCaregiverList,
}

func runCaregiverList(cmd *cobra.Command, args []string) error {
	db, reg, _, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	caregivers, err := reg.Caregivers()
	if err != nil {
		return err
	}
	if len(caregivers) == 0 {
		fmt.Fprintln(os.Stdout, "No caregivers registered.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s %-24s %-24s %10s\n", "ID", "NAME", "QUALIFICATION", "VACATION")
	for _, cg := range caregivers {
		fmt.Fprintf(os.Stdout, "%-5d %-24s %-24s %10.1f\n", cg.ID, cg.Name, cg.Qualification, cg.VacationDays)
	}
	return nil
}

var caregiverVacationCmd = &cobra.Command{
	Use:   "vacation CAREGIVER_ID",
	Short: "Record vacation days for a caregiver",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaregiverVacation,
}

func runCaregiverVacation(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid caregiver id %q", args[0])
	}
	days, _ := cmd.Flags().GetFloat64("days")

	db, reg, _, err := openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := reg.RecordVacation(id, days); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Recorded %.1f vacation day(s) for caregiver %d\n", days, id)
	return nil
}
