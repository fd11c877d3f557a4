//go:build integration

package client

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mech-arsenal/internal/handlers/arsenal/v1alpha1"
)

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

// TestFullProgressionIntegration drives one item from acquisition to its
// final stage against a running server. Set ARSENAL_TEST_PACK_KEY and
// ARSENAL_TEST_ITEM_ID to an item loaded by that server.
func TestFullProgressionIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	packKey := os.Getenv("ARSENAL_TEST_PACK_KEY")
	itemID, err := strconv.Atoi(os.Getenv("ARSENAL_TEST_ITEM_ID"))
	if packKey == "" || err != nil {
		t.Skip("ARSENAL_TEST_PACK_KEY and ARSENAL_TEST_ITEM_ID are required")
	}

	grpcServerAddress := os.Getenv("GRPC_SERVER_ADDRESS")
	if grpcServerAddress == "" {
		grpcServerAddress = "localhost:50051"
	}
	conn, err := grpc.NewClient(grpcServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Logf("Failed to close connection: %v", err)
		}
	}()

	client := v1alpha1.NewArsenalServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	itemResp, err := client.Call(ctx, v1alpha1.MethodGetItem, mustStruct(t, map[string]interface{}{
		"pack_key": packKey, "item_id": itemID,
	}))
	require.NoError(t, err)
	stages := itemResp.AsMap()["item"].(map[string]interface{})["stages"].([]interface{})
	require.NotEmpty(t, stages)

	acquired, err := client.Call(ctx, v1alpha1.MethodAcquireItem, mustStruct(t, map[string]interface{}{
		"owner_id": fmt.Sprintf("integration_%d", time.Now().UnixNano()),
		"pack_key": packKey,
		"item_id":  itemID,
	}))
	require.NoError(t, err)
	instanceID := acquired.AsMap()["instance"].(map[string]interface{})["instance_id"].(string)
	defer func() {
		_, _ = client.Call(context.Background(), v1alpha1.MethodDeleteInstance, mustStruct(t, map[string]interface{}{
			"instance_id": instanceID,
		}))
	}()

	for i, raw := range stages {
		stage := raw.(map[string]interface{})
		maxLevel := int(stage["max_level"].(float64))

		if maxLevel > 0 {
			_, err := client.Call(ctx, v1alpha1.MethodLevelUp, mustStruct(t, map[string]interface{}{
				"instance_id": instanceID, "levels": maxLevel,
			}))
			require.NoError(t, err, "level up %s", stage["tier"])
		}

		if i == len(stages)-1 {
			break
		}
		resp, err := client.Call(ctx, v1alpha1.MethodTransform, mustStruct(t, map[string]interface{}{
			"instance_id": instanceID,
		}))
		require.NoError(t, err, "transform from %s", stage["tier"])
		assert.Equal(t, stage["tier"], resp.AsMap()["previous_tier"])
	}

	final, err := client.Call(ctx, v1alpha1.MethodGetInstance, mustStruct(t, map[string]interface{}{
		"instance_id": instanceID,
	}))
	require.NoError(t, err)
	inst := final.AsMap()["instance"].(map[string]interface{})
	assert.Equal(t, true, inst["is_maxed"])
	assert.Equal(t, "max", inst["display_level"])

	_, err = client.Call(ctx, v1alpha1.MethodTransform, mustStruct(t, map[string]interface{}{
		"instance_id": instanceID,
	}))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}
