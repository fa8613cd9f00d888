package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
	role    string

	startDate string
	endDate   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerlite-cli",
		Short: "LedgerLite CLI tool",
		Long:  `A command line interface for interacting with the LedgerLite API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LedgerLite API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "cli", "User ID sent as the caller identity")
	rootCmd.PersistentFlags().StringVar(&role, "role", "regular", "Role sent as the caller identity")

	// Account commands
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts operations",
	}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	})

	rootCmd.AddCommand(accountsCmd)

	// Report commands
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Report operations",
	}
	reportCmd.PersistentFlags().StringVar(&startDate, "start", "", "Report start date (YYYY-MM-DD)")
	reportCmd.PersistentFlags().StringVar(&endDate, "end", "", "Report end date (YYYY-MM-DD)")

	for _, name := range []string{"balance-sheet", "income-statement", "trial-balance"} {
		name := name
		reportCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "Fetch the " + name + " report",
			Run: func(cmd *cobra.Command, args []string) {
				fetchReport(name)
			},
		})
	}

	reportCmd.AddCommand(&cobra.Command{
		Use:   "ratios",
		Short: "Fetch the month-to-date dashboard ratios",
		Run: func(cmd *cobra.Command, args []string) {
			fetchRatios()
		},
	})

	rootCmd.AddCommand(reportCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.PersistentFlags().StringVar(&startDate, "start", "", "Check start date (YYYY-MM-DD)")
	ledgerCmd.PersistentFlags().StringVar(&endDate, "end", "", "Check end date (YYYY-MM-DD)")

	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Verify that trial balance debits equal credits",
		Run: func(cmd *cobra.Command, args []string) {
			checkLedger()
		},
	})

	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func apiGet(path string) []byte {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("X-User-ID", userID)
	req.Header.Set("X-User-Role", role)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func rangeQuery() string {
	return fmt.Sprintf("?start=%s&end=%s", startDate, endDate)
}

func listAccounts() {
	body := apiGet("/api/v1/accounts/")

	var result struct {
		Accounts []struct {
			Number  string `json:"number"`
			Name    string `json:"name"`
			Balance string `json:"balance"`
		} `json:"accounts"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-8s %-30s %15s\n", "NUMBER", "NAME", "BALANCE")
	for _, a := range result.Accounts {
		fmt.Printf("%-8s %-30s %15s\n", a.Number, truncate(a.Name, 30), a.Balance)
	}
}

func fetchReport(name string) {
	printJSON(mustUnmarshal(apiGet("/api/v1/reports/" + name + rangeQuery())))
}

func fetchRatios() {
	printJSON(mustUnmarshal(apiGet("/api/v1/reports/ratios")))
}

func checkLedger() {
	body := apiGet("/api/v1/reports/trial-balance" + rangeQuery())

	var result struct {
		TotalDebit  string `json:"total_debit"`
		TotalCredit string `json:"total_credit"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if result.TotalDebit != result.TotalCredit {
		fmt.Printf("Ledger check FAILED\nTotal debits:  %s\nTotal credits: %s\n", result.TotalDebit, result.TotalCredit)
		os.Exit(1)
	}

	fmt.Printf("Ledger check PASSED\nTotal debits:  %s\nTotal credits: %s\n", result.TotalDebit, result.TotalCredit)
}

func mustUnmarshal(body []byte) any {
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	return result
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
