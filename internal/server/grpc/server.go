// Package grpc exposes the credential service over gRPC and maps service
// error kinds to gRPC status codes.
package grpc

import (
	"context"
	"net"

	pb "github.com/dmitrijs2005/blogauth/internal/authpb"
	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/dmitrijs2005/blogauth/internal/server/services"
	"google.golang.org/grpc"
)

type credentialSvc interface {
	SignUp(ctx context.Context, in services.SignUpInput) (*services.TokenPair, error)
	SignIn(ctx context.Context, in services.SignInInput) (*services.SignInResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	ResetPassword(ctx context.Context, in services.ResetPasswordInput) error
	FindUser(ctx context.Context, userID string) (*models.User, error)
}

type tokenVerifier interface {
	Verify(ctx context.Context, kind auth.Kind, tokenString string) (*auth.Claims, error)
}

type GRPCServer struct {
	address     string
	credentials credentialSvc
	tokens      tokenVerifier
	logger      logging.Logger
}

var _ pb.AuthServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, cs credentialSvc, tv tokenVerifier) (*GRPCServer, error) {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		credentials: cs,
		tokens:      tv,
	}, nil
}

// NewServer creates a grpc.Server with the interceptors installed and the
// service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
