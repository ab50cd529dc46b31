package grpc

import (
	"context"
	"database/sql"
	"errors"
	"inventory/domain"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The read API is described with protobuf well-known types, so no generated
// code is needed. Items are structs with the same keys as the HTTP listing.
const (
	InventoryServiceName = "inventory.v1.InventoryService"
	ListItemsMethod      = "/" + InventoryServiceName + "/ListItems"
	GetItemMethod        = "/" + InventoryServiceName + "/GetItem"
)

type InventoryService interface {
	ListItems(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	GetItem(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
}

type InventoryReader interface {
	GetItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (domain.Item, error)
}

type InventoryServiceServer struct {
	repository InventoryReader
}

func NewInventoryServiceServer(repository InventoryReader) *InventoryServiceServer {
	return &InventoryServiceServer{
		repository: repository,
	}
}

func RegisterInventoryServiceServer(r grpc.ServiceRegistrar, srv InventoryService) {
	r.RegisterService(&InventoryServiceDesc, srv)
}

func (s *InventoryServiceServer) ListItems(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items, err := s.repository.GetItems(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(items))}
	for _, item := range items {
		st, err := itemToStruct(item)
		if err != nil {
			return nil, status.Error(codes.Internal, "failed to encode item")
		}
		list.Values = append(list.Values, structpb.NewStructValue(st))
	}

	return list, nil
}

func (s *InventoryServiceServer) GetItem(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be positive")
	}

	item, err := s.repository.GetItem(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError(err)
	}

	st, err := itemToStruct(item)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode item")
	}
	return st, nil
}

func (s *InventoryServiceServer) mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return status.Error(codes.NotFound, "item not found")
	}
	return status.Error(codes.Internal, "internal error")
}

func itemToStruct(item domain.Item) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         item.ID,
		"item_name":  item.ItemName,
		"quantity":   item.Quantity,
		"date_added": item.DateAdded.String(),
		"price":      item.Price.InexactFloat64(),
		"condition":  item.Condition,
	})
}

var InventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: InventoryServiceName,
	HandlerType: (*InventoryService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListItems", Handler: listItemsHandler},
		{MethodName: "GetItem", Handler: getItemHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "inventory/v1/inventory",
}

func listItemsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryService).ListItems(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListItemsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InventoryService).ListItems(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getItemHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryService).GetItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetItemMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InventoryService).GetItem(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// InventoryClient calls InventoryService over conn.
type InventoryClient struct {
	conn grpc.ClientConnInterface
}

func NewInventoryClient(conn grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{conn: conn}
}

func (c *InventoryClient) ListItems(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, ListItemsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) GetItem(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, GetItemMethod, wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
