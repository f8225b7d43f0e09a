package pathserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully-qualified names of the path service and its methods
const (
	ServiceName                   = "heroes.path.v1.PathService"
	FindPathFullMethodName        = "/" + ServiceName + "/FindPath"
	SuitableTargetsFullMethodName = "/" + ServiceName + "/SuitableTargets"
)

// PathServiceServer is the server API for the path service. Messages are
// google.protobuf.Struct documents, see converters.go for their layout.
type PathServiceServer interface {
	FindPath(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SuitableTargets(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the path service for grpc.Server registration
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PathServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindPath", Handler: findPathHandler},
		{MethodName: "SuitableTargets", Handler: suitableTargetsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "heroes/path/v1/path.proto",
}

// RegisterPathServiceServer registers srv with s
func RegisterPathServiceServer(s grpc.ServiceRegistrar, srv PathServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func findPathHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PathServiceServer).FindPath(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FindPathFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PathServiceServer).FindPath(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func suitableTargetsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PathServiceServer).SuitableTargets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SuitableTargetsFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PathServiceServer).SuitableTargets(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// PathServiceClient is the client API for the path service
type PathServiceClient interface {
	FindPath(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SuitableTargets(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type pathServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPathServiceClient creates a client over cc
func NewPathServiceClient(cc grpc.ClientConnInterface) PathServiceClient {
	return &pathServiceClient{cc: cc}
}

func (c *pathServiceClient) FindPath(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FindPathFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pathServiceClient) SuitableTargets(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SuitableTargetsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
