package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/logging"
	"github.com/dmitrijs2005/savvysnip/internal/rpc"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/dmitrijs2005/savvysnip/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	SignInWithCredential(ctx context.Context, idToken string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SignOut(ctx context.Context, userID, refreshToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	DeleteAccount(ctx context.Context, userID string) error
}

type categorySvc interface {
	Create(ctx context.Context, userID, name string) (*models.Category, error)
	List(ctx context.Context, userID string) ([]*models.Category, error)
	Rename(ctx context.Context, userID, id, name string) error
	Reorder(ctx context.Context, userID string, ids []string) error
	Delete(ctx context.Context, userID, id string) error
}

type snipSvc interface {
	Create(ctx context.Context, userID string, ref services.CategoryRef, title, code string) (*models.Snip, error)
	List(ctx context.Context, userID string, ref services.CategoryRef) ([]*models.Snip, error)
	Update(ctx context.Context, userID string, ref services.CategoryRef, id string, ts time.Time, title, code string) error
	Delete(ctx context.Context, userID string, ref services.CategoryRef, id, title, code string, ts time.Time) error
}

type exportSvc interface {
	ExportCategory(ctx context.Context, userID, categoryID string) (*services.Export, error)
}

type GRPCServer struct {
	rpc.UnimplementedSavvySnipServer
	address    string
	users      userSvc
	categories categorySvc
	snips      snipSvc
	exports    exportSvc
	logger     logging.Logger
	jwtSecret  []byte
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, cs categorySvc, ss snipSvc, es exportSvc, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		users:      us,
		categories: cs,
		snips:      ss,
		exports:    es,
		jwtSecret:  []byte(secretKey),
	}, nil
}

// newServer builds the gRPC server with the interceptor chain and the
// SavvySnip service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	rpc.RegisterSavvySnipServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
