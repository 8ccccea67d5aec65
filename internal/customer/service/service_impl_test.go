package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/internal/customer/domain"
	"github.com/smallbiznis/billfold/internal/customer/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCustomerService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	stmts := []string{
		`CREATE TABLE customers (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			mobile VARCHAR(10) NOT NULL UNIQUE,
			address TEXT NOT NULL,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE invoices (
			id BIGINT PRIMARY KEY,
			invoice_number VARCHAR(32) NOT NULL UNIQUE,
			date TIMESTAMP NOT NULL,
			total BIGINT NOT NULL DEFAULT 0,
			customer_id BIGINT NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_mobile VARCHAR(10) NOT NULL,
			customer_address TEXT NOT NULL,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("prepare schema: %v", err)
		}
	}

	service := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	return service, db, node
}

func TestCustomerCreateAndGet(t *testing.T) {
	service, _, _ := setupCustomerService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Asha Traders",
		Mobile:  "9876543210",
		Address: "14 Market Road",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := service.GetByID(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Mobile != "9876543210" {
		t.Fatalf("mobile = %q", got.Mobile)
	}
}

func TestCustomerMobileValidation(t *testing.T) {
	service, _, _ := setupCustomerService(t)
	ctx := context.Background()

	for _, mobile := range []string{"", "12345", "98765432101", "98765abc10", "9876 54321"} {
		_, err := service.Create(ctx, domain.CreateCustomerRequest{
			Name:    "Asha Traders",
			Mobile:  mobile,
			Address: "14 Market Road",
		})
		if !errors.Is(err, domain.ErrInvalidMobile) {
			t.Fatalf("mobile %q err = %v, want ErrInvalidMobile", mobile, err)
		}
	}
}

func TestCustomerCreateValidation(t *testing.T) {
	service, _, _ := setupCustomerService(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, domain.CreateCustomerRequest{
		Mobile:  "9876543210",
		Address: "14 Market Road",
	}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("err = %v, want ErrInvalidName", err)
	}
	if _, err := service.Create(ctx, domain.CreateCustomerRequest{
		Name:   "Asha Traders",
		Mobile: "9876543210",
	}); !errors.Is(err, domain.ErrInvalidAddress) {
		t.Fatalf("err = %v, want ErrInvalidAddress", err)
	}
}

func TestCustomerDuplicateMobile(t *testing.T) {
	service, _, _ := setupCustomerService(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Asha Traders",
		Mobile:  "9876543210",
		Address: "14 Market Road",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := service.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Other Shop",
		Mobile:  "9876543210",
		Address: "2 Station Road",
	})
	if !errors.Is(err, domain.ErrDuplicateMobile) {
		t.Fatalf("err = %v, want ErrDuplicateMobile", err)
	}
}

func TestCustomerUpdate(t *testing.T) {
	service, _, _ := setupCustomerService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Asha Traders",
		Mobile:  "9876543210",
		Address: "14 Market Road",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(ctx, domain.UpdateCustomerRequest{
		ID:      created.ID.String(),
		Name:    "Asha Traders & Sons",
		Mobile:  "9000000000",
		Address: "15 Market Road",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Asha Traders & Sons" || updated.Mobile != "9000000000" {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestCustomerDeleteBlockedWhileInvoiced(t *testing.T) {
	service, db, node := setupCustomerService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Asha Traders",
		Mobile:  "9876543210",
		Address: "14 Market Road",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now().UTC()
	err = db.Exec(
		`INSERT INTO invoices (id, invoice_number, date, total, customer_id,
		   customer_name, customer_mobile, customer_address, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		node.Generate(), "001/03/24", now, 2500, created.ID,
		created.Name, created.Mobile, created.Address, "{}", now, now,
	).Error
	if err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	if err := service.Delete(ctx, created.ID.String()); !errors.Is(err, domain.ErrCustomerHasInvoices) {
		t.Fatalf("err = %v, want ErrCustomerHasInvoices", err)
	}

	if err := db.Exec(`DELETE FROM invoices WHERE customer_id = ?`, created.ID).Error; err != nil {
		t.Fatalf("clear invoices: %v", err)
	}
	if err := service.Delete(ctx, created.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
