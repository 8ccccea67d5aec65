package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/internal/clock"
	customerdomain "github.com/smallbiznis/billfold/internal/customer/domain"
	"github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/internal/invoice/number"
	productdomain "github.com/smallbiznis/billfold/internal/product/domain"
	"github.com/smallbiznis/billfold/pkg/db"
	"github.com/smallbiznis/billfold/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
	ProductRepo  productdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	customerRepo customerdomain.Repository
	productRepo  productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invoice.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		productRepo:  p.ProductRepo,
	}
}

// validatedItem is a line that passed validation, with its product snapshot
// resolved.
type validatedItem struct {
	productID   snowflake.ID
	productName string
	quantity    int64
	rate        int64
	total       int64
}

// Create validates the request, then allocates the next invoice number and
// persists the invoice with all its items in one transaction. Invoice and
// items land together or not at all.
//
// The read-max-then-insert allocation is racy under concurrent creation; the
// unique constraint on invoice_number is the backstop, and a duplicate-key
// commit failure retries the whole allocate+insert once before surfacing.
func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (*domain.CreateInvoiceResponse, error) {
	customer, items, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := s.createOnce(ctx, customer, items, req.Total)
	if err != nil && db.IsDuplicateKeyErr(err) {
		s.log.Warn("invoice number collision, retrying allocation",
			zap.String("customer_id", customer.ID.String()))
		resp, err = s.createOnce(ctx, customer, items, req.Total)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", resp.Invoice.ID.String()),
		zap.String("invoice_number", resp.Invoice.InvoiceNumber),
		zap.Int64("total", resp.Invoice.Total),
		zap.Int("items", len(resp.Items)))
	return resp, nil
}

// validate resolves and checks every reference before any write happens.
// Totals are recomputed here: the stored amounts are Σ quantity*rate, and a
// payload disagreeing with its own arithmetic is rejected.
func (s *Service) validate(ctx context.Context, req domain.CreateInvoiceRequest) (*customerdomain.Customer, []validatedItem, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil || customerID == 0 {
		return nil, nil, domain.ErrInvalidCustomerID
	}

	if len(req.Items) == 0 {
		return nil, nil, domain.ErrEmptyItems
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, domain.ErrCustomerNotFound
	}

	productIDs := make([]snowflake.ID, 0, len(req.Items))
	seen := make(map[snowflake.ID]struct{}, len(req.Items))
	for _, item := range req.Items {
		productID, err := snowflake.ParseString(strings.TrimSpace(item.ProductID))
		if err != nil || productID == 0 {
			return nil, nil, domain.ErrInvalidProductID
		}
		if item.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidQuantity
		}
		if item.Rate < 0 {
			return nil, nil, domain.ErrInvalidRate
		}
		if item.Total != item.Quantity*item.Rate {
			return nil, nil, domain.ErrTotalMismatch
		}
		if _, ok := seen[productID]; !ok {
			seen[productID] = struct{}{}
			productIDs = append(productIDs, productID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, s.db, productIDs)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[snowflake.ID]productdomain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	if len(byID) < len(productIDs) {
		for _, id := range productIDs {
			if _, ok := byID[id]; !ok {
				s.log.Warn("invoice references missing product", zap.String("product_id", id.String()))
			}
		}
		return nil, nil, domain.ErrProductNotFound
	}

	var sum int64
	items := make([]validatedItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, _ := snowflake.ParseString(strings.TrimSpace(item.ProductID))
		product := byID[productID]
		items = append(items, validatedItem{
			productID:   productID,
			productName: product.Name,
			quantity:    item.Quantity,
			rate:        item.Rate,
			total:       item.Quantity * item.Rate,
		})
		sum += item.Quantity * item.Rate
	}
	if sum != req.Total {
		return nil, nil, domain.ErrTotalMismatch
	}

	return customer, items, nil
}

// createOnce runs one allocate+insert attempt inside a single transaction.
// The scope's last number is read through the transaction handle, so the read
// and the insert share one isolation scope.
func (s *Service) createOnce(ctx context.Context, customer *customerdomain.Customer, items []validatedItem, total int64) (*domain.CreateInvoiceResponse, error) {
	now := s.clock.Now()
	scope := number.ScopeOf(now)

	var (
		invoice      domain.Invoice
		invoiceItems []domain.InvoiceItem
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		last, err := s.repo.FindLastNumberInScope(ctx, tx, scope.Suffix())
		if err != nil {
			return fmt.Errorf("%w: read last number in scope: %v", number.ErrAllocation, err)
		}

		invoiceNumber, err := number.Next(last, scope)
		if err != nil {
			return err
		}

		invoice = domain.Invoice{
			ID:              s.genID.Generate(),
			InvoiceNumber:   invoiceNumber,
			Date:            now,
			Total:           total,
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			CustomerMobile:  customer.Mobile,
			CustomerAddress: customer.Address,
			Metadata:        datatypes.JSONMap{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.repo.InsertInvoice(ctx, tx, &invoice); err != nil {
			return err
		}

		invoiceItems = make([]domain.InvoiceItem, 0, len(items))
		for _, item := range items {
			row := domain.InvoiceItem{
				ID:          s.genID.Generate(),
				InvoiceID:   invoice.ID,
				ProductID:   item.productID,
				ProductName: item.productName,
				Quantity:    item.quantity,
				Rate:        item.rate,
				Total:       item.total,
				CreatedAt:   now,
			}
			if err := s.repo.InsertItem(ctx, tx, &row); err != nil {
				return err
			}
			invoiceItems = append(invoiceItems, row)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.CreateInvoiceResponse{
		Invoice: invoice,
		Items:   invoiceItems,
	}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	invoices, err := s.repo.FindAll(ctx, s.db, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(invoices, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(invoices) > pageSize {
		invoices = invoices[:pageSize]
	}

	invoiceIDs := make([]snowflake.ID, 0, len(invoices))
	for _, invoice := range invoices {
		invoiceIDs = append(invoiceIDs, invoice.ID)
	}

	items, err := s.repo.FindItemsByInvoiceIDs(ctx, s.db, invoiceIDs)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	itemsByInvoice := make(map[snowflake.ID][]domain.InvoiceItem, len(invoices))
	for _, item := range items {
		itemsByInvoice[item.InvoiceID] = append(itemsByInvoice[item.InvoiceID], item)
	}

	details := make([]domain.InvoiceDetail, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice == nil {
			continue
		}
		details = append(details, toDetail(*invoice, itemsByInvoice[invoice.ID]))
	}

	resp := domain.ListInvoiceResponse{Invoices: details}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.InvoiceDetail, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}

	items, err := s.repo.FindItemsByInvoiceIDs(ctx, s.db, []snowflake.ID{invoice.ID})
	if err != nil {
		return nil, err
	}

	detail := toDetail(*invoice, items)
	return &detail, nil
}

func toDetail(invoice domain.Invoice, items []domain.InvoiceItem) domain.InvoiceDetail {
	if items == nil {
		items = []domain.InvoiceItem{}
	}
	return domain.InvoiceDetail{
		ID:            invoice.ID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		Date:          invoice.Date.Format(time.RFC3339),
		Total:         invoice.Total,
		CustomerDetails: domain.CustomerDetails{
			Name:    invoice.CustomerName,
			Mobile:  invoice.CustomerMobile,
			Address: invoice.CustomerAddress,
		},
		Items: items,
	}
}
