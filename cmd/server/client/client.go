// Package client provides test commands for the arsenal gRPC service
package client

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mech-arsenal/internal/handlers/arsenal/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the arsenal service",
	Long:  `Client commands allow you to exercise the arsenal service by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Catalog
	ClientCmd.AddCommand(getItemCmd)
	ClientCmd.AddCommand(previewCmd)

	// Inventory
	ClientCmd.AddCommand(acquireCmd)
	ClientCmd.AddCommand(inventoryCmd)
	ClientCmd.AddCommand(levelUpCmd)
	ClientCmd.AddCommand(addPowerCmd)
	ClientCmd.AddCommand(transformCmd)

	// Loadouts
	ClientCmd.AddCommand(loadoutCmd)
}

// createArsenalClient creates an arsenal service client
func createArsenalClient() (v1alpha1.ArsenalServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewArsenalServiceClient(conn), cleanup, nil
}

// call sends one request and prints the response as JSON
func call(method string, fields map[string]interface{}) error {
	client, cleanup, err := createArsenalClient()
	if err != nil {
		return err
	}
	defer cleanup()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Calling %s on %s...", method, serverAddr)

	resp, err := client.Call(ctx, method, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response to JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
