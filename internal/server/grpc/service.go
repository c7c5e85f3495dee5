package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the auth service. Messages are
// protobuf well-known types, so clients need no generated code:
//
//	Authenticate(Struct{username, password}) returns (StringValue token)
//	WhoAmI(Empty) returns (Struct{id, username, email})
//	ListStudents(Struct{page, per_page}) returns (ListValue of Struct{id, full_name, group})
//	Logout(Empty) returns (BoolValue)
const ServiceName = "authkeeper.AuthService"

const (
	MethodAuthenticate = "/" + ServiceName + "/Authenticate"
	MethodWhoAmI       = "/" + ServiceName + "/WhoAmI"
	MethodListStudents = "/" + ServiceName + "/ListStudents"
	MethodLogout       = "/" + ServiceName + "/Logout"
)

type AuthServiceServer interface {
	Authenticate(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	WhoAmI(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListStudents(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	Logout(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&authServiceDesc, srv)
}

var authServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Authenticate", Handler: unary(MethodAuthenticate, AuthServiceServer.Authenticate)},
		{MethodName: "WhoAmI", Handler: unary(MethodWhoAmI, AuthServiceServer.WhoAmI)},
		{MethodName: "ListStudents", Handler: unary(MethodListStudents, AuthServiceServer.ListStudents)},
		{MethodName: "Logout", Handler: unary(MethodLogout, AuthServiceServer.Logout)},
	},
	Metadata: "authkeeper/auth.proto",
}

// unary adapts a typed service method to a grpc.MethodDesc handler.
func unary[Req any, Resp any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthServiceClient calls the auth service over cc.
type AuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func (c *AuthServiceClient) Authenticate(ctx context.Context, userName, password string, opts ...grpc.CallOption) (string, error) {
	in, err := structpb.NewStruct(map[string]any{"username": userName, "password": password})
	if err != nil {
		return "", err
	}
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, MethodAuthenticate, in, out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *AuthServiceClient) WhoAmI(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodWhoAmI, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) ListStudents(ctx context.Context, page, perPage int, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	in, err := structpb.NewStruct(map[string]any{"page": page, "per_page": perPage})
	if err != nil {
		return nil, err
	}
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, MethodListStudents, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Logout(ctx context.Context, opts ...grpc.CallOption) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, MethodLogout, &emptypb.Empty{}, out, opts...); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}
