package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to E-Jardin",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		token, err := apiClient.Login(email, password)
		if err != nil {
			return fmt.Errorf("login failed: %v", err)
		}

		viper.Set("token", token)
		if err := viper.WriteConfig(); err != nil {
			_ = viper.SafeWriteConfig()
		}
		fmt.Println("Login successful")
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		products, err := apiClient.ListProducts(category)
		if err != nil {
			return fmt.Errorf("error getting products: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\t")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t\n",
				p.ID, p.Name, p.Category, p.Price, p.Stock)
		}
		return w.Flush()
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List and manage orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		orders, err := apiClient.ListOrders(status)
		if err != nil {
			return fmt.Errorf("error getting orders: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
		fmt.Fprintln(w, "ID\tNUMBER\tSTATUS\tTOTAL\tITEMS\tCREATED\t")
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%s\t\n",
				o.ID, o.Number, o.Status, o.TotalPrice, len(o.Items),
				o.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var shipCmd = &cobra.Command{
	Use:   "ship [order-id]",
	Short: "Mark an order as shipped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid order ID: %v", err)
		}
		tracking, _ := cmd.Flags().GetString("tracking")

		if err := apiClient.UpdateOrderStatus(uint(id), "shipped", tracking); err != nil {
			return fmt.Errorf("failed to update order: %v", err)
		}

		fmt.Printf("Order %d marked as shipped\n", id)
		return nil
	},
}

// Report commands
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage scheduled reports",
}

var scheduleReportCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a periodic report",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		cadence, _ := cmd.Flags().GetString("cadence")
		recipient, _ := cmd.Flags().GetString("recipient")

		schedule, err := apiClient.ScheduleReport(kind, cadence, recipient)
		if err != nil {
			return fmt.Errorf("failed to schedule report: %v", err)
		}

		fmt.Printf("Report scheduled: %s report will be sent to %s (%s), first run %s\n",
			schedule.Kind, schedule.Recipient, schedule.Cadence,
			schedule.NextDueAt.Format(time.RFC3339))
		return nil
	},
}

var sendReportCmd = &cobra.Command{
	Use:   "send",
	Short: "Generate and email a report immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		cadence, _ := cmd.Flags().GetString("cadence")
		recipient, _ := cmd.Flags().GetString("recipient")

		if err := apiClient.RunReport(kind, cadence, recipient); err != nil {
			return fmt.Errorf("failed to send report: %v", err)
		}

		fmt.Printf("%s report sent to %s\n", kind, recipient)
		return nil
	},
}

var listReportsCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		schedules, err := apiClient.ListReportSchedules()
		if err != nil {
			return fmt.Errorf("failed to list reports: %v", err)
		}

		if len(schedules) == 0 {
			fmt.Println("No scheduled reports found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
		fmt.Fprintln(w, "ID\tKIND\tCADENCE\tRECIPIENT\tLAST SENT\tNEXT DUE\t")
		for _, s := range schedules {
			lastSent := "never"
			if s.LastSentAt != nil {
				lastSent = s.LastSentAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
				s.ID, s.Kind, s.Cadence, s.Recipient, lastSent,
				s.NextDueAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var reportDataCmd = &cobra.Command{
	Use:   "data [type]",
	Short: "Fetch on-demand report data (sales, inventory, customers)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startFlag, _ := cmd.Flags().GetString("start")
		endFlag, _ := cmd.Flags().GetString("end")

		end := time.Now()
		start := end.AddDate(0, -1, 0)
		var err error
		if startFlag != "" {
			if start, err = time.Parse(time.RFC3339, startFlag); err != nil {
				return fmt.Errorf("invalid start time: %v", err)
			}
		}
		if endFlag != "" {
			if end, err = time.Parse(time.RFC3339, endFlag); err != nil {
				return fmt.Errorf("invalid end time: %v", err)
			}
		}

		data, err := apiClient.GetReportData(args[0], start, end)
		if err != nil {
			return fmt.Errorf("failed to fetch report: %v", err)
		}

		fmt.Println(string(data))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.Flags().StringP("password", "p", "", "Password")

	productsCmd.Flags().String("category", "", "Filter by category")
	ordersCmd.Flags().String("status", "", "Filter by status")
	shipCmd.Flags().String("tracking", "", "Tracking number")

	scheduleReportCmd.Flags().String("kind", "SALES", "Report kind (SALES/INVENTORY)")
	scheduleReportCmd.Flags().String("cadence", "WEEKLY", "Cadence (DAILY/WEEKLY/MONTHLY)")
	scheduleReportCmd.Flags().String("recipient", "", "Email address to send the report to")

	sendReportCmd.Flags().String("kind", "SALES", "Report kind (SALES/INVENTORY)")
	sendReportCmd.Flags().String("cadence", "WEEKLY", "Lookback window (DAILY/WEEKLY/MONTHLY)")
	sendReportCmd.Flags().String("recipient", "", "Email address to send the report to")

	reportDataCmd.Flags().String("start", "", "Start time (RFC3339 format)")
	reportDataCmd.Flags().String("end", "", "End time (RFC3339 format)")

	reportCmd.AddCommand(scheduleReportCmd)
	reportCmd.AddCommand(sendReportCmd)
	reportCmd.AddCommand(listReportsCmd)
	reportCmd.AddCommand(reportDataCmd)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(shipCmd)
	rootCmd.AddCommand(reportCmd)
}
