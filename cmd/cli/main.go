package main

import (
	"bytes"
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
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumina-cli",
		Short: "Lumina CLI tool",
		Long:  `A command line interface for interacting with the Lumina ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Lumina API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(txCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(insightsCmd())
	rootCmd.AddCommand(resetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func summaryCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the monthly dashboard",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/reports/overview"
			if month != "" {
				path += "?month=" + month
			}

			var overview struct {
				Month        string `json:"month"`
				TotalBalance string `json:"totalBalance"`
				Income       string `json:"income"`
				Expense      string `json:"expense"`
				Budgets      []struct {
					CategoryName string `json:"categoryName"`
					Spent        string `json:"spent"`
					Limit        string `json:"limit"`
					Percent      string `json:"percent"`
					OverBudget   bool   `json:"overBudget"`
				} `json:"budgets"`
			}
			get(path, &overview)

			fmt.Printf("Month:         %s\n", overview.Month)
			fmt.Printf("Total balance: %s\n", overview.TotalBalance)
			fmt.Printf("Income:        %s\n", overview.Income)
			fmt.Printf("Expense:       %s\n", overview.Expense)
			if len(overview.Budgets) > 0 {
				fmt.Println("Budgets:")
				for _, b := range overview.Budgets {
					marker := ""
					if b.OverBudget {
						marker = "  OVER BUDGET"
					}
					fmt.Printf("  %-16s %s / %s (%s%%)%s\n", b.CategoryName, b.Spent, b.Limit, b.Percent, marker)
				}
			}
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Reference month (YYYY-MM), defaults to current")
	return cmd
}

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	return cmd
}

func txAddCmd() *cobra.Command {
	var (
		amount    string
		kind      string
		category  string
		wallet    string
		toWallet  string
		note      string
		recurring string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Commit a transaction",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"amount":     amount,
				"type":       kind,
				"categoryId": category,
				"walletId":   wallet,
			}
			if toWallet != "" {
				payload["toWalletId"] = toWallet
			}
			if note != "" {
				payload["note"] = note
			}
			if recurring != "" {
				payload["isRecurring"] = true
				payload["recurringFrequency"] = recurring
			}

			var resp struct {
				Transaction struct {
					ID string `json:"id"`
				} `json:"transaction"`
				State struct {
					Version int64 `json:"version"`
				} `json:"state"`
			}
			post("/api/v1/transactions", payload, &resp)

			fmt.Printf("Committed %s (ledger version %d)\n", resp.Transaction.ID, resp.State.Version)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount (required)")
	cmd.Flags().StringVar(&kind, "type", "EXPENSE", "INCOME, EXPENSE or TRANSFER")
	cmd.Flags().StringVar(&category, "category", "", "Category id")
	cmd.Flags().StringVar(&wallet, "wallet", "", "Source wallet id (required)")
	cmd.Flags().StringVar(&toWallet, "to-wallet", "", "Destination wallet id (transfers)")
	cmd.Flags().StringVar(&note, "note", "", "Note")
	cmd.Flags().StringVar(&recurring, "recurring", "", "DAILY, WEEKLY or MONTHLY")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("wallet")
	return cmd
}

func txListCmd() *cobra.Command {
	var (
		wallet string
		kind   string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/transactions?limit=%d", limit)
			if wallet != "" {
				path += "&wallet=" + wallet
			}
			if kind != "" {
				path += "&type=" + kind
			}

			var resp struct {
				Transactions []struct {
					ID     string `json:"id"`
					Date   string `json:"date"`
					Type   string `json:"type"`
					Amount string `json:"amount"`
					Note   string `json:"note"`
				} `json:"transactions"`
				Total int `json:"total"`
			}
			get(path, &resp)

			for _, tx := range resp.Transactions {
				fmt.Printf("%s  %-8s %10s  %s  %s\n", tx.Date, tx.Type, tx.Amount, tx.ID, tx.Note)
			}
			fmt.Printf("%d of %d transactions\n", len(resp.Transactions), resp.Total)
		},
	}

	cmd.Flags().StringVar(&wallet, "wallet", "", "Filter by wallet id")
	cmd.Flags().StringVar(&kind, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [json|csv]",
		Short: "Download a backup or a CSV of the log",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			format := args[0]
			if format != "json" && format != "csv" {
				fmt.Printf("unknown export format %q\n", format)
				os.Exit(1)
			}

			body := getRaw("/api/v1/export/" + format)
			if out == "" {
				os.Stdout.Write(body)
				return
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				fmt.Printf("Failed to write %s: %v\n", out, err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(body), out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the ledger from a backup document",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Printf("Failed to read %s: %v\n", args[0], err)
				os.Exit(1)
			}

			var resp struct {
				Version      int64 `json:"version"`
				Transactions []any `json:"transactions"`
			}
			postRaw("/api/v1/import", data, &resp)

			fmt.Printf("Imported %d transactions (ledger version %d)\n", len(resp.Transactions), resp.Version)
		},
	}
}

func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Compare wallet balances against the transaction log",
		Run: func(cmd *cobra.Command, args []string) {
			var rows []struct {
				Name           string `json:"name"`
				Balance        string `json:"balance"`
				TransactionSum string `json:"transactionSum"`
				ImpliedOpening string `json:"impliedOpening"`
			}
			get("/api/v1/ledger/audit", &rows)

			fmt.Printf("%-16s %12s %12s %12s\n", "Wallet", "Balance", "Log sum", "Opening")
			for _, r := range rows {
				fmt.Printf("%-16s %12s %12s %12s\n", r.Name, r.Balance, r.TransactionSum, r.ImpliedOpening)
			}
		},
	}
}

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Ask the advisor for spending insights",
		Run: func(cmd *cobra.Command, args []string) {
			var resp struct {
				Insights string `json:"insights"`
			}
			post("/api/v1/assistant/insights", nil, &resp)
			fmt.Println(resp.Insights)
		},
	}
}

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all data and restore the seed ledger",
		Run: func(cmd *cobra.Command, args []string) {
			if !yes {
				fmt.Println("Refusing to reset without --yes")
				os.Exit(1)
			}

			var resp struct {
				Version int64 `json:"version"`
			}
			post("/api/v1/reset", nil, &resp)
			fmt.Printf("Ledger reset (version %d)\n", resp.Version)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func get(path string, v any) {
	body := getRaw(path)
	if err := json.Unmarshal(body, v); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
}

func getRaw(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
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

func post(path string, payload, v any) {
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
	}
	postRaw(path, data, v)
}

func postRaw(path string, data []byte, v any) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if v != nil {
		if err := json.Unmarshal(body, v); err != nil {
			fmt.Printf("Failed to parse response: %v\n", err)
			os.Exit(1)
		}
	}
}
