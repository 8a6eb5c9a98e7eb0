// Package main is the entry point for the tower defense server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tower-defense/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "tower-defense",
	Short: "Tower defense simulation server",
	Long:  `Runs tower defense matches server-side and exposes them over gRPC and a WebSocket snapshot feed.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
