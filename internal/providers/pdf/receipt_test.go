package pdf

import (
	"context"
	"io"
	"testing"

	"github.com/smallbiznis/billfold/internal/config"
)

func testProvider() *Provider {
	holder := &config.ShopProfileHolder{}
	holder.Set(config.ShopProfile{
		Name:    "Asha Stores",
		Address: "14 Market Road",
		Phone:   "9876543210",
		Footer:  "Thank you, visit again!",
	})
	return NewProvider(holder)
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{250, "2.50"},
		{2500, "25.00"},
		{123456, "1234.56"},
		{-2500, "-25.00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.amount); got != tc.want {
			t.Fatalf("FormatAmount(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestGenerateReceipt(t *testing.T) {
	provider := testProvider()

	reader, err := provider.GenerateReceipt(context.Background(), ReceiptData{
		InvoiceNumber:   "001/03/24",
		Date:            "2024-03-15T10:00:00Z",
		CustomerName:    "Asha Traders",
		CustomerMobile:  "9876543210",
		CustomerAddress: "14 Market Road",
		Items: []ReceiptItem{
			{Name: "Tea Pack", Quantity: 2, Rate: 2500, Total: 5000},
			{Name: "Sugar 1kg", Quantity: 1, Rate: 4200, Total: 4200},
		},
		Total: 9200,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(buf) == 0 {
		t.Fatal("expected pdf bytes")
	}
	if string(buf[:4]) != "%PDF" {
		t.Fatalf("not a pdf, starts with %q", buf[:4])
	}
}

func TestGenerateReceiptRequiresNumber(t *testing.T) {
	provider := testProvider()

	if _, err := provider.GenerateReceipt(context.Background(), ReceiptData{}); err == nil {
		t.Fatal("expected error for missing invoice number")
	}
}
