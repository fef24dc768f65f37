package grpc

import (
	"context"
	"time"

	pb "github.com/dmitrijs2005/blogauth/internal/authpb"
	"github.com/dmitrijs2005/blogauth/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *pb.SignUpRequest) (*pb.TokenPair, error) {

	in := services.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := validateSignUp(in); err != nil {
		return nil, err
	}

	tokens, err := s.credentials.SignUp(ctx, in)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.SignInResponse, error) {

	in := services.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	}
	if err := validateSignIn(in); err != nil {
		return nil, err
	}

	result, err := s.credentials.SignIn(ctx, in)
	if err != nil {
		return nil, s.signInStatus(ctx, err)
	}

	return &pb.SignInResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ID:           result.ID,
		Name:         result.Name,
		Email:        result.Email,
	}, nil
}

// ForgotPassword never returns the reset link: only its recipient may see it.
func (s *GRPCServer) ForgotPassword(ctx context.Context, req *pb.ForgotPasswordRequest) (*pb.StatusResponse, error) {

	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	if _, err := s.credentials.ForgotPassword(ctx, req.Email); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.StatusResponse{Status: "sent"}, nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.TokenPair, error) {

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh_token is required")
	}

	tokens, err := s.credentials.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *pb.ResetPasswordRequest) (*pb.StatusResponse, error) {

	in := services.ResetPasswordInput{
		UserID:   req.ID,
		Token:    req.Token,
		Password: req.Password,
	}
	if err := validateResetPassword(in); err != nil {
		return nil, err
	}

	if err := s.credentials.ResetPassword(ctx, in); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.StatusResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Me(ctx context.Context, req *pb.Empty) (*pb.Profile, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	user, err := s.credentials.FindUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.Empty) (*pb.StatusResponse, error) {

	return &pb.StatusResponse{Status: "OK"}, nil

}
