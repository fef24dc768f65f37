// Package authpb describes the blogauth.v1.AuthService gRPC service. Typed
// request and response messages travel as google.protobuf.Struct values, so
// no generated code is needed.
package authpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "blogauth.v1.AuthService"

// Method names of AuthService.
const (
	MethodSignUp         = "SignUp"
	MethodSignIn         = "SignIn"
	MethodForgotPassword = "ForgotPassword"
	MethodRefresh        = "Refresh"
	MethodResetPassword  = "ResetPassword"
	MethodMe             = "Me"
	MethodPing           = "Ping"
)

// FullMethod returns the "/service/method" path of name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// AuthServiceServer is the server API of AuthService.
type AuthServiceServer interface {
	SignUp(context.Context, *SignUpRequest) (*TokenPair, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	ForgotPassword(context.Context, *ForgotPasswordRequest) (*StatusResponse, error)
	Refresh(context.Context, *RefreshRequest) (*TokenPair, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*StatusResponse, error)
	Me(context.Context, *Empty) (*Profile, error)
	Ping(context.Context, *Empty) (*StatusResponse, error)
}

// unaryMethod decodes the Struct payload into Req, hands the typed request
// to interceptors and the server, and encodes Resp back into a Struct.
func unaryMethod[Req, Resp any, PReq wireMessage[Req], PResp wireMessage[Resp]](
	name string,
	call func(AuthServiceServer, context.Context, PReq) (PResp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			raw := new(structpb.Struct)
			if err := dec(raw); err != nil {
				return nil, err
			}
			in := PReq(new(Req))
			in.fromStruct(raw)

			handler := func(ctx context.Context, req any) (any, error) {
				out, err := call(srv.(AuthServiceServer), ctx, req.(PReq))
				if err != nil {
					return nil, err
				}
				return out.toStruct()
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// AuthServiceDesc describes AuthService for grpc.Server.RegisterService.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodSignUp, AuthServiceServer.SignUp),
		unaryMethod(MethodSignIn, AuthServiceServer.SignIn),
		unaryMethod(MethodForgotPassword, AuthServiceServer.ForgotPassword),
		unaryMethod(MethodRefresh, AuthServiceServer.Refresh),
		unaryMethod(MethodResetPassword, AuthServiceServer.ResetPassword),
		unaryMethod(MethodMe, AuthServiceServer.Me),
		unaryMethod(MethodPing, AuthServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blogauth/v1/auth.proto",
}

// RegisterAuthServiceServer registers srv on s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}
