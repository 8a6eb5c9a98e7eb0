package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "tower.api.v1alpha1.MatchService"

// Method names
const (
	MethodCreateMatch   = "CreateMatch"
	MethodGetSnapshot   = "GetSnapshot"
	MethodListMatches   = "ListMatches"
	MethodUpgrade       = "Upgrade"
	MethodSetSpeed      = "SetSpeed"
	MethodPause         = "Pause"
	MethodResume        = "Resume"
	MethodRestart       = "Restart"
	MethodEditInventory = "EditInventory"
	MethodEndMatch      = "EndMatch"
)

// MatchServiceServer is the server side of the match service. Messages are
// google.protobuf.Struct documents.
type MatchServiceServer interface {
	CreateMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMatches(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Upgrade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetSpeed(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Pause(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Resume(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Restart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterMatchServiceServer registers srv on s
func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&MatchServiceDesc, srv)
}

type unaryMethod func(MatchServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MatchServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MatchServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// MatchServiceDesc describes the match service for grpc.Server
var MatchServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodCreateMatch, MatchServiceServer.CreateMatch),
		unaryHandler(MethodGetSnapshot, MatchServiceServer.GetSnapshot),
		unaryHandler(MethodListMatches, MatchServiceServer.ListMatches),
		unaryHandler(MethodUpgrade, MatchServiceServer.Upgrade),
		unaryHandler(MethodSetSpeed, MatchServiceServer.SetSpeed),
		unaryHandler(MethodPause, MatchServiceServer.Pause),
		unaryHandler(MethodResume, MatchServiceServer.Resume),
		unaryHandler(MethodRestart, MatchServiceServer.Restart),
		unaryHandler(MethodEditInventory, MatchServiceServer.EditInventory),
		unaryHandler(MethodEndMatch, MatchServiceServer.EndMatch),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tower/api/v1alpha1/match.proto",
}

// MatchServiceClient calls the match service
type MatchServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMatchServiceClient creates a client over cc
func NewMatchServiceClient(cc grpc.ClientConnInterface) *MatchServiceClient {
	return &MatchServiceClient{cc: cc}
}

// Call invokes method with req
func (c *MatchServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
