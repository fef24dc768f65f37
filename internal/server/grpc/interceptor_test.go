package grpc

import (
	"context"
	"errors"
	"testing"

	pb "github.com/dmitrijs2005/blogauth/internal/authpb"
	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(tv tokenVerifier) *GRPCServer {
	return &GRPCServer{
		logger:      nopLogger{},
		tokens:      tv,
		credentials: &fakeCredentials{},
	}
}

func TestInterceptor_Unprotected_AllowsWithoutToken(t *testing.T) {
	s := newTestServer(&fakeTokens{err: errors.New("must not be called")})

	info := &grpc.UnaryServerInfo{FullMethod: pb.FullMethod(pb.MethodSignIn)}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_Me_MissingToken(t *testing.T) {
	s := newTestServer(&fakeTokens{})

	info := &grpc.UnaryServerInfo{FullMethod: pb.FullMethod(pb.MethodMe)}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestInterceptor_Me_InvalidToken(t *testing.T) {
	s := newTestServer(&fakeTokens{err: common.E(common.KindInvalidToken, "invalid token", nil)})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, "bad"))
	info := &grpc.UnaryServerInfo{FullMethod: pb.FullMethod(pb.MethodMe)}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called with invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(ctx, nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestInterceptor_Me_ValidToken(t *testing.T) {
	s := newTestServer(&fakeTokens{claims: &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
		Kind:             auth.KindAccess,
	}})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, "good"))
	info := &grpc.UnaryServerInfo{FullMethod: pb.FullMethod(pb.MethodMe)}

	var gotUserID string
	h := func(ctx context.Context, req any) (any, error) {
		gotUserID, _ = userIDFromContext(ctx)
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(ctx, nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != "u-1" {
		t.Fatalf("userID not propagated, got %q", gotUserID)
	}
}
