package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// TokenListener is told about every token pair obtained by a refresh so it
// can be persisted.
type TokenListener func(ctx context.Context, accessToken, refreshToken string) error

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	onRefresh   TokenListener
	conn        *grpc.ClientConn
	client      rpc.SavvySnipClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) SetTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// accessTokenInterceptor attaches the access token and, when the server says
// it has expired, refreshes the pair once and repeats the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.tokens()
	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	resp, err := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	if s.onRefresh != nil {
		if err := s.onRefresh(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
			return fmt.Errorf("persist refreshed tokens: %w", err)
		}
	}

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily. Every call is bounded by timeout
// when it is positive.
func NewGRPCClient(endpointURL string, timeout time.Duration, onRefresh TokenListener, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, onRefresh: onRefresh}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewSavvySnipClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) startSession(resp *rpc.AuthResponse) *models.Session {
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return &models.Session{
		UserID:       resp.UserID,
		Email:        resp.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*models.Session, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.startSession(resp), nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.SignIn(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.startSession(resp), nil
}

func (s *GRPCClient) SignInWithCredential(ctx context.Context, idToken string) (*models.Session, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.SignInWithCredential(ctx, &rpc.SignInWithCredentialRequest{IDToken: idToken})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.startSession(resp), nil
}

// SignOut revokes the current refresh token. The local token pair is dropped
// even when the server call fails.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	_, refreshToken := s.tokens()
	_, err := s.client.SignOut(ctx, &rpc.SignOutRequest{RefreshToken: refreshToken})
	s.SetTokens("", "")
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if _, err := s.client.RequestPasswordReset(ctx, &rpc.PasswordResetRequest{Email: email}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if _, err := s.client.DeleteAccount(ctx, &emptypb.Empty{}); err != nil {
		return s.mapError(err)
	}
	s.SetTokens("", "")
	return nil
}

func fromRPCCategory(c rpc.Category) models.Category {
	return models.Category{ID: c.ID, Name: c.Name, Order: c.Order}
}

func fromRPCSnip(sn rpc.Snip) models.Snip {
	return models.Snip{ID: sn.ID, CategoryID: sn.CategoryID, Title: sn.Title, Code: sn.Code, Timestamp: sn.Timestamp}
}

func toRPCRef(ref models.CategoryRef) rpc.CategoryRef {
	if ref.ID != "" {
		return rpc.CategoryRef{CategoryID: ref.ID}
	}
	return rpc.CategoryRef{CategoryName: ref.Name}
}

func (s *GRPCClient) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.CreateCategory(ctx, &rpc.CreateCategoryRequest{Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	c := fromRPCCategory(*resp)
	return &c, nil
}

func (s *GRPCClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.ListCategories(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}

	res := make([]models.Category, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		res = append(res, fromRPCCategory(c))
	}
	return res, nil
}

func (s *GRPCClient) RenameCategory(ctx context.Context, id, name string) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if _, err := s.client.RenameCategory(ctx, &rpc.RenameCategoryRequest{ID: id, Name: name}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ReorderCategories(ctx context.Context, ids []string) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if _, err := s.client.ReorderCategories(ctx, &rpc.ReorderCategoriesRequest{IDs: ids}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if _, err := s.client.DeleteCategory(ctx, &rpc.DeleteCategoryRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) CreateSnip(ctx context.Context, ref models.CategoryRef, title, code string) (*models.Snip, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.CreateSnip(ctx, &rpc.CreateSnipRequest{CategoryRef: toRPCRef(ref), Title: title, Code: code})
	if err != nil {
		return nil, s.mapError(err)
	}
	sn := fromRPCSnip(*resp)
	return &sn, nil
}

func (s *GRPCClient) ListSnips(ctx context.Context, ref models.CategoryRef) ([]models.Snip, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.ListSnips(ctx, &rpc.ListSnipsRequest{CategoryRef: toRPCRef(ref)})
	if err != nil {
		return nil, s.mapError(err)
	}

	res := make([]models.Snip, 0, len(resp.Snips))
	for _, sn := range resp.Snips {
		res = append(res, fromRPCSnip(sn))
	}
	return res, nil
}

// UpdateSnip rewrites title and code. The snip is found by ID, or by its
// original Timestamp inside ref when ID is empty.
func (s *GRPCClient) UpdateSnip(ctx context.Context, ref models.CategoryRef, snip models.Snip) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	req := &rpc.UpdateSnipRequest{
		CategoryRef: toRPCRef(ref),
		ID:          snip.ID,
		Timestamp:   snip.Timestamp,
		Title:       snip.Title,
		Code:        snip.Code,
	}
	if _, err := s.client.UpdateSnip(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

// DeleteSnip removes the snip with snip.ID, or the one matching title, code
// and timestamp exactly inside ref when ID is empty.
func (s *GRPCClient) DeleteSnip(ctx context.Context, ref models.CategoryRef, snip models.Snip) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	req := &rpc.DeleteSnipRequest{
		CategoryRef: toRPCRef(ref),
		ID:          snip.ID,
		Title:       snip.Title,
		Code:        snip.Code,
		Timestamp:   snip.Timestamp,
	}
	if _, err := s.client.DeleteSnip(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ExportCategory(ctx context.Context, categoryID string) (*models.Export, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.client.ExportCategory(ctx, &rpc.ExportCategoryRequest{CategoryID: categoryID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Export{URL: resp.URL, Key: resp.Key, ExpiresAt: resp.ExpiresAt}, nil
}

// mapError turns a gRPC status back into the sentinel the server sent.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}

	if sentinel, ok := common.SentinelByMessage(st.Message()); ok {
		return sentinel
	}

	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return common.ErrorUnauthorized
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
