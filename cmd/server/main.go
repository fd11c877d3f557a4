// Package main is the entry point for the arsenal server and its tooling
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-arsenal/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "arsenal",
	Short: "Mech arsenal gRPC server",
	Long:  `Arsenal resolves mech item stats across levels and transform tiers and tracks owned item instances.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
