package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
	"github.com/mmynk/famledger/pkg/api/apiconnect"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CategoryService implements the CategoryService RPC interface.
type CategoryService struct {
	apiconnect.UnimplementedCategoryServiceHandler
	store storage.Store
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(store storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

// CreateCategory adds a category. Names are unique per type, ignoring case.
func (s *CategoryService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	typ := strings.ToLower(strings.TrimSpace(req.Msg.Type))
	if !models.ValidType(typ) {
		return nil, invalidArgument("type must be %q or %q", models.TypeIncome, models.TypeExpense)
	}
	if req.Msg.Color != "" && !hexColor.MatchString(req.Msg.Color) {
		return nil, invalidArgument("color must look like #a1b2c3")
	}

	existing, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	for _, c := range existing {
		if c.Type == typ && strings.EqualFold(c.Name, name) {
			return nil, connect.NewError(connect.CodeAlreadyExists, errors.New("category already exists"))
		}
	}

	c := &models.Category{
		UserID:      userID,
		Name:        name,
		Type:        typ,
		Description: strings.TrimSpace(req.Msg.Description),
		Color:       req.Msg.Color,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, storeError("create category", err)
	}

	slog.Info("Category created", "user_id", userID, "category_id", c.ID, "name", c.Name)
	return connect.NewResponse(&api.CreateCategoryResponse{Category: toAPICategory(c)}), nil
}

// ListCategories returns the caller's categories, optionally of one type.
func (s *CategoryService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Type != "" && !models.ValidType(req.Msg.Type) {
		return nil, invalidArgument("unknown type %q", req.Msg.Type)
	}

	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, storeError("list categories", err)
	}

	out := make([]*api.Category, 0, len(categories))
	for _, c := range categories {
		if req.Msg.Type == "" || c.Type == req.Msg.Type {
			out = append(out, toAPICategory(c))
		}
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: out}), nil
}

// DeleteCategory removes a category; its transactions become uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id is required")
	}

	if err := s.store.DeleteCategory(ctx, userID, req.Msg.ID); err != nil {
		return nil, storeError("delete category", err)
	}

	slog.Info("Category deleted", "user_id", userID, "category_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteCategoryResponse{}), nil
}
