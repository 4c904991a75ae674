package catalog

import (
	"context"

	"github.com/bautizosmaitte/storefront-api/pkg/logger"
	"github.com/bautizosmaitte/storefront-api/pkg/pagination"
)

// Source is the fetch surface the service wraps. Satisfied by *Client.
type Source interface {
	Products(ctx context.Context, filters Filters) (*ProductList, error)
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	Categories(ctx context.Context) (*CategoryList, error)
	Brands(ctx context.Context) (*BrandList, error)
}

// Service exposes catalog reads with degrade-to-empty semantics: listing
// fetches never fail upward, they log and return an empty collection with
// default pagination metadata. Single-product lookups keep their errors.
type Service interface {
	Products(ctx context.Context, filters Filters) *ProductList
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	Categories(ctx context.Context) *CategoryList
	Brands(ctx context.Context) *BrandList
}

type service struct {
	source Source
	logg   *logger.Logger
}

// NewService wraps a catalog source with the storefront's failure policy.
func NewService(source Source, logg *logger.Logger) Service {
	return &service{source: source, logg: logg}
}

func (s *service) Products(ctx context.Context, filters Filters) *ProductList {
	list, err := s.source.Products(ctx, filters)
	if err != nil {
		s.logError(ctx, "products fetch degraded to empty", err)
		return EmptyProductList()
	}
	return list
}

func (s *service) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.source.ProductBySlug(ctx, slug)
}

func (s *service) Categories(ctx context.Context) *CategoryList {
	list, err := s.source.Categories(ctx)
	if err != nil {
		s.logError(ctx, "categories fetch degraded to empty", err)
		return &CategoryList{Data: []Category{}, Meta: Meta{Pagination: pagination.EmptyMeta()}}
	}
	return list
}

func (s *service) Brands(ctx context.Context) *BrandList {
	list, err := s.source.Brands(ctx)
	if err != nil {
		s.logError(ctx, "brands fetch degraded to empty", err)
		return &BrandList{Data: []Brand{}, Meta: Meta{Pagination: pagination.EmptyMeta()}}
	}
	return list
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}
