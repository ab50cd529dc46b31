package grpc

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"
	"time"

	"inventory/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeReader struct {
	items []domain.Item
	err   error
	panic bool
}

func (f *fakeReader) GetItems(context.Context) ([]domain.Item, error) {
	if f.panic {
		panic("boom")
	}
	return f.items, f.err
}

func (f *fakeReader) GetItem(_ context.Context, id int64) (domain.Item, error) {
	if f.err != nil {
		return domain.Item{}, f.err
	}
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Item{}, sql.ErrNoRows
}

func startServer(t *testing.T, reader InventoryReader) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	server := NewServerWithListener(lis)
	RegisterInventoryServiceServer(server.GetGRPCServer(), NewInventoryServiceServer(reader))
	server.SetServing(InventoryServiceName)

	go func() { _ = server.Start() }()
	t.Cleanup(server.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: 1, ItemName: "Widget", Quantity: 5, DateAdded: domain.NewDate(2024, time.January, 1), Price: decimal.RequireFromString("9.99"), Condition: "new"},
		{ID: 2, ItemName: "Gadget", Quantity: 2, DateAdded: domain.NewDate(2024, time.February, 1), Price: decimal.RequireFromString("1.5"), Condition: "used"},
	}
}

func TestInventoryService_ListItems(t *testing.T) {
	client := NewInventoryClient(startServer(t, &fakeReader{items: sampleItems()}))

	list, err := client.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Values, 2)

	first := list.Values[0].GetStructValue().AsMap()
	assert.Equal(t, map[string]any{
		"id":         float64(1),
		"item_name":  "Widget",
		"quantity":   float64(5),
		"date_added": "2024-01-01",
		"price":      9.99,
		"condition":  "new",
	}, first)
}

func TestInventoryService_GetItem(t *testing.T) {
	client := NewInventoryClient(startServer(t, &fakeReader{items: sampleItems()}))

	item, err := client.GetItem(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", item.AsMap()["item_name"])

	_, err = client.GetItem(context.Background(), 99)
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetItem(context.Background(), 0)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestInventoryService_StoreFailureIsInternal(t *testing.T) {
	client := NewInventoryClient(startServer(t, &fakeReader{err: errors.New("db gone")}))

	_, err := client.ListItems(context.Background())
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestInventoryService_PanicIsRecovered(t *testing.T) {
	client := NewInventoryClient(startServer(t, &fakeReader{panic: true}))

	_, err := client.ListItems(context.Background())
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestServer_HealthReportsServing(t *testing.T) {
	conn := startServer(t, &fakeReader{})

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: InventoryServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}
