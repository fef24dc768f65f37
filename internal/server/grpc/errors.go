package grpc

import (
	"context"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error to a gRPC status. Only the human-readable
// message crosses the boundary; causes are logged.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	kind := common.KindOf(err)
	msg := common.MessageOf(err)

	switch kind {
	case common.KindConflict:
		return status.Error(codes.AlreadyExists, msg)
	case common.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case common.KindInvalidCredentials:
		return status.Error(codes.Unauthenticated, msg)
	case common.KindInvalidToken:
		return status.Error(codes.Unauthenticated, "invalid token")
	case common.KindValidation:
		return status.Error(codes.InvalidArgument, msg)
	case common.KindDeliveryFailure, common.KindPersistence:
		s.logger.Error(ctx, err.Error(), "kind", kind.String())
		return status.Error(codes.Unavailable, msg)
	case common.KindPartialSignupFailure:
		s.logger.Error(ctx, err.Error(), "kind", kind.String(), "action", "operator attention required")
		return status.Error(codes.Internal, "internal error")
	default:
		s.logger.Error(ctx, err.Error(), "kind", kind.String())
		return status.Error(codes.Internal, "internal error")
	}
}

// signInStatus does not tell an unknown email from a wrong password.
func (s *GRPCServer) signInStatus(ctx context.Context, err error) error {
	switch common.KindOf(err) {
	case common.KindNotFound, common.KindInvalidCredentials:
		s.logger.Info(ctx, "sign-in rejected", "reason", common.MessageOf(err))
		return status.Error(codes.Unauthenticated, "invalid email or password")
	}
	return s.toStatus(ctx, err)
}
