package main

import (
	"fmt"
	"os"

	"fintrack/cmd/budgets"
	"fintrack/cmd/categories"
	"fintrack/cmd/chart"
	"fintrack/cmd/dashboard"
	"fintrack/cmd/expenses"
	"fintrack/cmd/incomes"
	"fintrack/cmd/root"
	"fintrack/internal/config"
)

func init() {
	// .env values must be in the environment before viper reads it.
	_, _ = config.LoadEnv()

	root.Init()

	root.Cmd.AddCommand(expenses.Cmd)
	root.Cmd.AddCommand(incomes.Cmd)
	root.Cmd.AddCommand(budgets.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(chart.Cmd)
	root.Cmd.AddCommand(dashboard.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
