//go:build integration

package client

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/tower-defense/internal/handlers/match/v1alpha1"
)

func TestMatchLifecycleIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
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

	client := v1alpha1.NewMatchServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req := func(fields map[string]any) *structpb.Struct {
		s, err := structpb.NewStruct(fields)
		require.NoError(t, err)
		return s
	}

	created, err := client.Call(ctx, v1alpha1.MethodCreateMatch, req(map[string]any{
		v1alpha1.FieldMode: "blitz",
		v1alpha1.FieldSeed: 12345,
	}))
	require.NoError(t, err)

	id := created.GetFields()[v1alpha1.FieldMatchID].GetStringValue()
	require.NotEmpty(t, id)
	snap := created.GetFields()["snapshot"].GetStructValue()
	assert.Equal(t, float64(12345), snap.GetFields()["seed"].GetNumberValue())
	assert.NotNil(t, snap.GetFields()["background"].GetStructValue())

	// Let the server simulate a little
	time.Sleep(200 * time.Millisecond)

	got, err := client.Call(ctx, v1alpha1.MethodGetSnapshot, req(map[string]any{v1alpha1.FieldMatchID: id}))
	require.NoError(t, err)
	elapsed := got.GetFields()["snapshot"].GetStructValue().GetFields()["elapsed"].GetNumberValue()
	assert.Greater(t, elapsed, 0.0)

	_, err = client.Call(ctx, v1alpha1.MethodEndMatch, req(map[string]any{v1alpha1.FieldMatchID: id}))
	require.NoError(t, err)

	_, err = client.Call(ctx, v1alpha1.MethodGetSnapshot, req(map[string]any{v1alpha1.FieldMatchID: id}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}
