package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "savvysnip.v1.SavvySnip"

const (
	MethodPing                 = "Ping"
	MethodRegister             = "Register"
	MethodSignIn               = "SignIn"
	MethodSignInWithCredential = "SignInWithCredential"
	MethodRefreshToken         = "RefreshToken"
	MethodSignOut              = "SignOut"
	MethodRequestPasswordReset = "RequestPasswordReset"
	MethodDeleteAccount        = "DeleteAccount"
	MethodCreateCategory       = "CreateCategory"
	MethodListCategories       = "ListCategories"
	MethodRenameCategory       = "RenameCategory"
	MethodReorderCategories    = "ReorderCategories"
	MethodDeleteCategory       = "DeleteCategory"
	MethodCreateSnip           = "CreateSnip"
	MethodListSnips            = "ListSnips"
	MethodUpdateSnip           = "UpdateSnip"
	MethodDeleteSnip           = "DeleteSnip"
	MethodExportCategory       = "ExportCategory"
)

// FullMethod returns the "/service/method" path gRPC uses for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// SavvySnipServer is the server API for the SavvySnip service.
type SavvySnipServer interface {
	Ping(context.Context, *emptypb.Empty) (*PingResponse, error)
	Register(context.Context, *CredentialsRequest) (*AuthResponse, error)
	SignIn(context.Context, *CredentialsRequest) (*AuthResponse, error)
	SignInWithCredential(context.Context, *SignInWithCredentialRequest) (*AuthResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	SignOut(context.Context, *SignOutRequest) (*emptypb.Empty, error)
	RequestPasswordReset(context.Context, *PasswordResetRequest) (*emptypb.Empty, error)
	DeleteAccount(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	CreateCategory(context.Context, *CreateCategoryRequest) (*Category, error)
	ListCategories(context.Context, *emptypb.Empty) (*ListCategoriesResponse, error)
	RenameCategory(context.Context, *RenameCategoryRequest) (*emptypb.Empty, error)
	ReorderCategories(context.Context, *ReorderCategoriesRequest) (*emptypb.Empty, error)
	DeleteCategory(context.Context, *DeleteCategoryRequest) (*emptypb.Empty, error)
	CreateSnip(context.Context, *CreateSnipRequest) (*Snip, error)
	ListSnips(context.Context, *ListSnipsRequest) (*ListSnipsResponse, error)
	UpdateSnip(context.Context, *UpdateSnipRequest) (*emptypb.Empty, error)
	DeleteSnip(context.Context, *DeleteSnipRequest) (*emptypb.Empty, error)
	ExportCategory(context.Context, *ExportCategoryRequest) (*ExportCategoryResponse, error)
}

// unary builds the method descriptor for one RPC, decoding the request and
// routing it through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(SavvySnipServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SavvySnipServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SavvySnipServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the SavvySnip service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SavvySnipServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, SavvySnipServer.Ping),
		unary(MethodRegister, SavvySnipServer.Register),
		unary(MethodSignIn, SavvySnipServer.SignIn),
		unary(MethodSignInWithCredential, SavvySnipServer.SignInWithCredential),
		unary(MethodRefreshToken, SavvySnipServer.RefreshToken),
		unary(MethodSignOut, SavvySnipServer.SignOut),
		unary(MethodRequestPasswordReset, SavvySnipServer.RequestPasswordReset),
		unary(MethodDeleteAccount, SavvySnipServer.DeleteAccount),
		unary(MethodCreateCategory, SavvySnipServer.CreateCategory),
		unary(MethodListCategories, SavvySnipServer.ListCategories),
		unary(MethodRenameCategory, SavvySnipServer.RenameCategory),
		unary(MethodReorderCategories, SavvySnipServer.ReorderCategories),
		unary(MethodDeleteCategory, SavvySnipServer.DeleteCategory),
		unary(MethodCreateSnip, SavvySnipServer.CreateSnip),
		unary(MethodListSnips, SavvySnipServer.ListSnips),
		unary(MethodUpdateSnip, SavvySnipServer.UpdateSnip),
		unary(MethodDeleteSnip, SavvySnipServer.DeleteSnip),
		unary(MethodExportCategory, SavvySnipServer.ExportCategory),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "savvysnip/v1/savvysnip.proto",
}

// RegisterSavvySnipServer registers srv on s.
func RegisterSavvySnipServer(s grpc.ServiceRegistrar, srv SavvySnipServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// UnimplementedSavvySnipServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible when methods are added.
type UnimplementedSavvySnipServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedSavvySnipServer) Ping(context.Context, *emptypb.Empty) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedSavvySnipServer) Register(context.Context, *CredentialsRequest) (*AuthResponse, error) {
	return nil, unimplemented(MethodRegister)
}
func (UnimplementedSavvySnipServer) SignIn(context.Context, *CredentialsRequest) (*AuthResponse, error) {
	return nil, unimplemented(MethodSignIn)
}
func (UnimplementedSavvySnipServer) SignInWithCredential(context.Context, *SignInWithCredentialRequest) (*AuthResponse, error) {
	return nil, unimplemented(MethodSignInWithCredential)
}
func (UnimplementedSavvySnipServer) RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error) {
	return nil, unimplemented(MethodRefreshToken)
}
func (UnimplementedSavvySnipServer) SignOut(context.Context, *SignOutRequest) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodSignOut)
}
func (UnimplementedSavvySnipServer) RequestPasswordReset(context.Context, *PasswordResetRequest) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodRequestPasswordReset)
}
func (UnimplementedSavvySnipServer) DeleteAccount(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodDeleteAccount)
}
func (UnimplementedSavvySnipServer) CreateCategory(context.Context, *CreateCategoryRequest) (*Category, error) {
	return nil, unimplemented(MethodCreateCategory)
}
func (UnimplementedSavvySnipServer) ListCategories(context.Context, *emptypb.Empty) (*ListCategoriesResponse, error) {
	return nil, unimplemented(MethodListCategories)
}
func (UnimplementedSavvySnipServer) RenameCategory(context.Context, *RenameCategoryRequest) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodRenameCategory)
}
func (UnimplementedSavvySnipServer) ReorderCategories(context.Context, *ReorderCategoriesRequest) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodReorderCategories)
}
func (UnimplementedSavvySnipServer) DeleteCategory(context.Context, *DeleteCategoryRequest) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodDeleteCategory)
}
func (UnimplementedSavvySnipServer) CreateSnip(context.Context, *CreateSnipRequest) (*Snip, error) {
	return nil, unimplemented(MethodCreateSnip)
}
func (UnimplementedSavvySnipServer) ListSnips(context.Context, *ListSnipsRequest) (*ListSnipsResponse, error) {
	return nil, unimplemented(MethodListSnips)
}
func (UnimplementedSavvySnipServer) UpdateSnip(context.Context, *UpdateSnipRequest) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodUpdateSnip)
}
func (UnimplementedSavvySnipServer) DeleteSnip(context.Context, *DeleteSnipRequest) (*emptypb.Empty, error) {
	return nil, unimplemented(MethodDeleteSnip)
}
func (UnimplementedSavvySnipServer) ExportCategory(context.Context, *ExportCategoryRequest) (*ExportCategoryResponse, error) {
	return nil, unimplemented(MethodExportCategory)
}
