package authpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// AuthServiceClient is the client API of AuthService.
type AuthServiceClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*TokenPair, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	ForgotPassword(ctx context.Context, in *ForgotPasswordRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenPair, error)
	ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Profile, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc}
}

func invoke[Req, Resp any, PReq wireMessage[Req], PResp wireMessage[Resp]](
	ctx context.Context, cc grpc.ClientConnInterface, method string, in PReq, opts ...grpc.CallOption,
) (PResp, error) {
	args, err := in.toStruct()
	if err != nil {
		return nil, err
	}
	reply := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(method), args, reply, opts...); err != nil {
		return nil, err
	}
	out := PResp(new(Resp))
	out.fromStruct(reply)
	return out, nil
}

func (c *authServiceClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[SignUpRequest, TokenPair](ctx, c.cc, MethodSignUp, in, opts...)
}

func (c *authServiceClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInRequest, SignInResponse](ctx, c.cc, MethodSignIn, in, opts...)
}

func (c *authServiceClient) ForgotPassword(ctx context.Context, in *ForgotPasswordRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[ForgotPasswordRequest, StatusResponse](ctx, c.cc, MethodForgotPassword, in, opts...)
}

func (c *authServiceClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[RefreshRequest, TokenPair](ctx, c.cc, MethodRefresh, in, opts...)
}

func (c *authServiceClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[ResetPasswordRequest, StatusResponse](ctx, c.cc, MethodResetPassword, in, opts...)
}

func (c *authServiceClient) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Empty, Profile](ctx, c.cc, MethodMe, in, opts...)
}

func (c *authServiceClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[Empty, StatusResponse](ctx, c.cc, MethodPing, in, opts...)
}
