package grpc

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/rpc"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/dmitrijs2005/savvysnip/internal/server/services"
	"google.golang.org/protobuf/types/known/emptypb"
)

func toRPCCategory(c *models.Category) rpc.Category {
	return rpc.Category{ID: c.ID, Name: c.Name, Order: c.Order}
}

func toRPCSnip(sn *models.Snip) rpc.Snip {
	return rpc.Snip{
		ID:         sn.ID,
		CategoryID: sn.CategoryID,
		Title:      sn.Title,
		Code:       sn.Code,
		Timestamp:  sn.Timestamp,
	}
}

func categoryRef(r rpc.CategoryRef) services.CategoryRef {
	return services.CategoryRef{ID: r.CategoryID, Name: r.CategoryName}
}

func (s *GRPCServer) CreateCategory(ctx context.Context, req *rpc.CreateCategoryRequest) (*rpc.Category, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.categories.Create(ctx, userID, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := toRPCCategory(c)
	return &out, nil

}

func (s *GRPCServer) ListCategories(ctx context.Context, req *emptypb.Empty) (*rpc.ListCategoriesResponse, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.categories.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &rpc.ListCategoriesResponse{Categories: make([]rpc.Category, 0, len(list))}
	for _, c := range list {
		resp.Categories = append(resp.Categories, toRPCCategory(c))
	}

	return resp, nil

}

func (s *GRPCServer) RenameCategory(ctx context.Context, req *rpc.RenameCategoryRequest) (*emptypb.Empty, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Rename(ctx, userID, req.ID, req.Name); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) ReorderCategories(ctx context.Context, req *rpc.ReorderCategoriesRequest) (*emptypb.Empty, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Reorder(ctx, userID, req.IDs); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) DeleteCategory(ctx context.Context, req *rpc.DeleteCategoryRequest) (*emptypb.Empty, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) CreateSnip(ctx context.Context, req *rpc.CreateSnipRequest) (*rpc.Snip, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sn, err := s.snips.Create(ctx, userID, categoryRef(req.CategoryRef), req.Title, req.Code)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := toRPCSnip(sn)
	return &out, nil

}

func (s *GRPCServer) ListSnips(ctx context.Context, req *rpc.ListSnipsRequest) (*rpc.ListSnipsResponse, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.snips.List(ctx, userID, categoryRef(req.CategoryRef))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &rpc.ListSnipsResponse{Snips: make([]rpc.Snip, 0, len(list))}
	for _, sn := range list {
		resp.Snips = append(resp.Snips, toRPCSnip(sn))
	}

	return resp, nil

}

func (s *GRPCServer) UpdateSnip(ctx context.Context, req *rpc.UpdateSnipRequest) (*emptypb.Empty, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	err = s.snips.Update(ctx, userID, categoryRef(req.CategoryRef), req.ID, req.Timestamp, req.Title, req.Code)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) DeleteSnip(ctx context.Context, req *rpc.DeleteSnipRequest) (*emptypb.Empty, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	err = s.snips.Delete(ctx, userID, categoryRef(req.CategoryRef), req.ID, req.Title, req.Code, req.Timestamp)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) ExportCategory(ctx context.Context, req *rpc.ExportCategoryRequest) (*rpc.ExportCategoryResponse, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	export, err := s.exports.ExportCategory(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.ExportCategoryResponse{URL: export.URL, Key: export.Key, ExpiresAt: export.ExpiresAt}, nil

}
