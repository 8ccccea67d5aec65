package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/internal/product/domain"
	"github.com/smallbiznis/billfold/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if req.Rate < 0 {
		return domain.Product{}, domain.ErrInvalidRate
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:        s.genID.Generate(),
		Name:      name,
		Rate:      req.Rate,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrDuplicateName
		}
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if req.Rate < 0 {
		return domain.Product{}, domain.ErrInvalidRate
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	item.Name = name
	item.Rate = req.Rate
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrDuplicateName
		}
		return domain.Product{}, err
	}

	return *item, nil
}

// Delete removes a product that no invoice item references. Historical
// invoice items keep their own rate/total snapshot, but the reference itself
// must stay resolvable, so deletion is refused while references exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	refs, err := s.repo.CountInvoiceReferences(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrProductInUse
	}

	return s.repo.Delete(ctx, s.db, parsed)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
