package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "arsenal.v1alpha1.ArsenalService"

// Method names
const (
	MethodGetItem        = "GetItem"
	MethodPreviewStats   = "PreviewStats"
	MethodAcquireItem    = "AcquireItem"
	MethodGetInstance    = "GetInstance"
	MethodListInventory  = "ListInventory"
	MethodLevelUp        = "LevelUp"
	MethodAddPower       = "AddPower"
	MethodTransform      = "Transform"
	MethodPaintInstance  = "PaintInstance"
	MethodDeleteInstance = "DeleteInstance"

	MethodSummarizeLoadout = "SummarizeLoadout"
)

// ArsenalServiceServer is the server API. Requests and responses are
// google.protobuf.Struct documents with snake_case fields.
type ArsenalServiceServer interface {
	GetItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PreviewStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AcquireItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetInstance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LevelUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddPower(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Transform(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PaintInstance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteInstance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SummarizeLoadout(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type serverMethod func(ArsenalServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call serverMethod) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ArsenalServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ArsenalServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes ArsenalService for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ArsenalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodGetItem, ArsenalServiceServer.GetItem),
		unaryHandler(MethodPreviewStats, ArsenalServiceServer.PreviewStats),
		unaryHandler(MethodAcquireItem, ArsenalServiceServer.AcquireItem),
		unaryHandler(MethodGetInstance, ArsenalServiceServer.GetInstance),
		unaryHandler(MethodListInventory, ArsenalServiceServer.ListInventory),
		unaryHandler(MethodLevelUp, ArsenalServiceServer.LevelUp),
		unaryHandler(MethodAddPower, ArsenalServiceServer.AddPower),
		unaryHandler(MethodTransform, ArsenalServiceServer.Transform),
		unaryHandler(MethodPaintInstance, ArsenalServiceServer.PaintInstance),
		unaryHandler(MethodDeleteInstance, ArsenalServiceServer.DeleteInstance),
		unaryHandler(MethodSummarizeLoadout, ArsenalServiceServer.SummarizeLoadout),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "arsenal/v1alpha1/arsenal.proto",
}

// RegisterArsenalServiceServer registers srv on s
func RegisterArsenalServiceServer(s grpc.ServiceRegistrar, srv ArsenalServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ArsenalServiceClient is the client API for ArsenalService
type ArsenalServiceClient interface {
	// Call invokes method with a request document
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type arsenalServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewArsenalServiceClient creates a client over cc
func NewArsenalServiceClient(cc grpc.ClientConnInterface) ArsenalServiceClient {
	return &arsenalServiceClient{cc: cc}
}

func (c *arsenalServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
