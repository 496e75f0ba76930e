package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "regform",
	Short: "Registration form validation service",
	Long: `regform validates registration form snapshots (full name, email, password,
password confirmation, phone and age).

It serves the validators over HTTP and a websocket for live feedback, and can
check a snapshot file from the command line.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
