package grpc

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/rpc"
	"github.com/dmitrijs2005/savvysnip/internal/server/services"
	"google.golang.org/protobuf/types/known/emptypb"
)

func authResponse(session *services.Session) *rpc.AuthResponse {
	return &rpc.AuthResponse{
		UserID:       session.User.ID,
		Email:        session.User.Email,
		AccessToken:  session.Tokens.AccessToken,
		RefreshToken: session.Tokens.RefreshToken,
	}
}

func (s *GRPCServer) Ping(ctx context.Context, req *emptypb.Empty) (*rpc.PingResponse, error) {

	return &rpc.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.AuthResponse, error) {

	s.logger.Info(ctx, "Registration request")

	session, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(session), nil

}

func (s *GRPCServer) SignIn(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.AuthResponse, error) {

	session, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(session), nil

}

func (s *GRPCServer) SignInWithCredential(ctx context.Context, req *rpc.SignInWithCredentialRequest) (*rpc.AuthResponse, error) {

	session, err := s.users.SignInWithCredential(ctx, req.IDToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(session), nil

}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.TokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) SignOut(ctx context.Context, req *rpc.SignOutRequest) (*emptypb.Empty, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.users.SignOut(ctx, userID, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) RequestPasswordReset(ctx context.Context, req *rpc.PasswordResetRequest) (*emptypb.Empty, error) {

	if err := s.users.RequestPasswordReset(ctx, req.Email); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteAccount(ctx, userID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}
