package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/savvysnip/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusCodes maps domain errors to gRPC codes. The status message is always
// the sentinel's text so clients can recover the sentinel.
var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrFieldEmpty, codes.InvalidArgument},
	{common.ErrInvalidReorder, codes.InvalidArgument},
	{common.ErrEmailAlreadyInUse, codes.AlreadyExists},
	{common.ErrWrongPassword, codes.Unauthenticated},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated},
	{common.ErrUserNotFound, codes.NotFound},
	{common.ErrCategoryNotFound, codes.NotFound},
	{common.ErrSnipNotFound, codes.NotFound},
	{common.ErrDataDeleteFailed, codes.Internal},
	{common.ErrDeleteFailed, codes.Internal},
}

func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			if sc.code == codes.Internal {
				s.logger.Error(ctx, err.Error())
			}
			return status.Error(sc.code, sc.err.Error())
		}
	}

	s.logger.Error(ctx, err.Error())
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
