// Package client provides test commands for the match gRPC service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/tower-defense/internal/handlers/match/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Shared by the per-match commands
	matchID string
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the match service",
	Long:  `Client commands drive matches on a running server by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Match lifecycle
	ClientCmd.AddCommand(createMatchCmd)
	ClientCmd.AddCommand(getSnapshotCmd)
	ClientCmd.AddCommand(listMatchesCmd)
	ClientCmd.AddCommand(endMatchCmd)

	// Controls
	ClientCmd.AddCommand(upgradeCmd)
	ClientCmd.AddCommand(speedCmd)
	ClientCmd.AddCommand(pauseCmd)
	ClientCmd.AddCommand(resumeCmd)
	ClientCmd.AddCommand(restartCmd)

	ClientCmd.AddCommand(inventoryCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createMatchClient creates a match service client
func createMatchClient() (*v1alpha1.MatchServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewMatchServiceClient(conn), cleanup, nil
}

// call sends fields to method and prints the response as JSON
func call(method string, fields map[string]any) error {
	client, cleanup, err := createMatchClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Call(ctx, method, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// requireMatchID registers the --match-id flag on cmd
func requireMatchID(cmd *cobra.Command) {
	cmd.Flags().StringVar(&matchID, "match-id", "", "Match ID (required)")
	_ = cmd.MarkFlagRequired("match-id") // nolint:errcheck // safe to ignore in init
}
