package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/internal/customer/domain"
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
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	mobile := strings.TrimSpace(req.Mobile)
	if !validMobile(mobile) {
		return domain.Customer{}, domain.ErrInvalidMobile
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return domain.Customer{}, domain.ErrInvalidAddress
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Mobile:    mobile,
		Address:   address,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateMobile
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

// Update edits the live customer record. Invoices created earlier keep the
// customer details they snapshotted at creation time.
func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	mobile := strings.TrimSpace(req.Mobile)
	if !validMobile(mobile) {
		return domain.Customer{}, domain.ErrInvalidMobile
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return domain.Customer{}, domain.ErrInvalidAddress
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	item.Name = name
	item.Mobile = mobile
	item.Address = address
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateMobile
		}
		return domain.Customer{}, err
	}

	return *item, nil
}

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

	invoices, err := s.repo.CountInvoices(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if invoices > 0 {
		return domain.ErrCustomerHasInvoices
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

func validMobile(mobile string) bool {
	if len(mobile) != 10 {
		return false
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
