package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// SavvySnipClient is the client API for the SavvySnip service.
type SavvySnipClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SignIn(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SignInWithCredential(ctx context.Context, in *SignInWithCredentialRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RequestPasswordReset(ctx context.Context, in *PasswordResetRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteAccount(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*Category, error)
	ListCategories(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error)
	RenameCategory(ctx context.Context, in *RenameCategoryRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ReorderCategories(ctx context.Context, in *ReorderCategoriesRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteCategory(ctx context.Context, in *DeleteCategoryRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	CreateSnip(ctx context.Context, in *CreateSnipRequest, opts ...grpc.CallOption) (*Snip, error)
	ListSnips(ctx context.Context, in *ListSnipsRequest, opts ...grpc.CallOption) (*ListSnipsResponse, error)
	UpdateSnip(ctx context.Context, in *UpdateSnipRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteSnip(ctx context.Context, in *DeleteSnipRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ExportCategory(ctx context.Context, in *ExportCategoryRequest, opts ...grpc.CallOption) (*ExportCategoryResponse, error)
}

type savvySnipClient struct {
	cc grpc.ClientConnInterface
}

// NewSavvySnipClient returns a client that sends every call with the JSON
// content-subtype.
func NewSavvySnipClient(cc grpc.ClientConnInterface) SavvySnipClient {
	return &savvySnipClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *savvySnipClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
func (c *savvySnipClient) Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodRegister, in, opts)
}
func (c *savvySnipClient) SignIn(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodSignIn, in, opts)
}
func (c *savvySnipClient) SignInWithCredential(ctx context.Context, in *SignInWithCredentialRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodSignInWithCredential, in, opts)
}
func (c *savvySnipClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}
func (c *savvySnipClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodSignOut, in, opts)
}
func (c *savvySnipClient) RequestPasswordReset(ctx context.Context, in *PasswordResetRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodRequestPasswordReset, in, opts)
}
func (c *savvySnipClient) DeleteAccount(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteAccount, in, opts)
}
func (c *savvySnipClient) CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*Category, error) {
	return invoke[Category](ctx, c.cc, MethodCreateCategory, in, opts)
}
func (c *savvySnipClient) ListCategories(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, MethodListCategories, in, opts)
}
func (c *savvySnipClient) RenameCategory(ctx context.Context, in *RenameCategoryRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodRenameCategory, in, opts)
}
func (c *savvySnipClient) ReorderCategories(ctx context.Context, in *ReorderCategoriesRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodReorderCategories, in, opts)
}
func (c *savvySnipClient) DeleteCategory(ctx context.Context, in *DeleteCategoryRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteCategory, in, opts)
}
func (c *savvySnipClient) CreateSnip(ctx context.Context, in *CreateSnipRequest, opts ...grpc.CallOption) (*Snip, error) {
	return invoke[Snip](ctx, c.cc, MethodCreateSnip, in, opts)
}
func (c *savvySnipClient) ListSnips(ctx context.Context, in *ListSnipsRequest, opts ...grpc.CallOption) (*ListSnipsResponse, error) {
	return invoke[ListSnipsResponse](ctx, c.cc, MethodListSnips, in, opts)
}
func (c *savvySnipClient) UpdateSnip(ctx context.Context, in *UpdateSnipRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodUpdateSnip, in, opts)
}
func (c *savvySnipClient) DeleteSnip(ctx context.Context, in *DeleteSnipRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteSnip, in, opts)
}
func (c *savvySnipClient) ExportCategory(ctx context.Context, in *ExportCategoryRequest, opts ...grpc.CallOption) (*ExportCategoryResponse, error) {
	return invoke[ExportCategoryResponse](ctx, c.cc, MethodExportCategory, in, opts)
}
