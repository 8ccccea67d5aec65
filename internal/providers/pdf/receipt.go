package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type ReceiptItem struct {
	Name     string
	Quantity int64
	Rate     int64
	Total    int64
}

type ReceiptData struct {
	InvoiceNumber   string
	Date            string
	CustomerName    string
	CustomerMobile  string
	CustomerAddress string
	Items           []ReceiptItem
	Total           int64
}

// GenerateReceipt renders an invoice as an 80mm-wide receipt PDF, the paper
// size of the thermal printers this app targets.
func (p *Provider) GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error) {
	_ = ctx
	if data.InvoiceNumber == "" {
		return nil, fmt.Errorf("receipt requires an invoice number")
	}

	shop := p.profile.Get()

	cfg := marotocfg.NewBuilder().
		WithDimensions(80, 200).
		WithLeftMargin(5).
		WithRightMargin(5).
		WithTopMargin(5).
		Build()

	m := maroto.New(cfg)

	m.AddRow(8,
		text.NewCol(12, shop.Name, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	if shop.Address != "" {
		m.AddRow(5,
			text.NewCol(12, shop.Address, props.Text{Size: 7, Align: align.Center}),
		)
	}
	if shop.Phone != "" {
		m.AddRow(4,
			text.NewCol(12, "Ph: "+shop.Phone, props.Text{Size: 7, Align: align.Center}),
		)
	}

	m.AddRow(2, line.NewCol(12))

	m.AddRow(10,
		col.New(12).Add(
			text.New("Invoice: "+data.InvoiceNumber, props.Text{Size: 8, Top: 1}),
			text.New("Date: "+data.Date, props.Text{Size: 8, Top: 5}),
		),
	)

	m.AddRow(12,
		col.New(12).Add(
			text.New(data.CustomerName, props.Text{Size: 8, Style: fontstyle.Bold, Top: 1}),
			text.New(data.CustomerMobile, props.Text{Size: 7, Top: 5}),
			text.New(data.CustomerAddress, props.Text{Size: 7, Top: 8}),
		),
	)

	m.AddRow(2, line.NewCol(12))

	m.AddRow(5,
		text.NewCol(6, "Item", props.Text{Size: 7, Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amt", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(5,
			text.NewCol(6, item.Name, props.Text{Size: 7}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 7, Align: align.Right}),
			text.NewCol(2, FormatAmount(item.Rate), props.Text{Size: 7, Align: align.Right}),
			text.NewCol(2, FormatAmount(item.Total), props.Text{Size: 7, Align: align.Right}),
		)
	}

	m.AddRow(2, line.NewCol(12))

	m.AddRow(7,
		text.NewCol(8, "TOTAL", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(4, FormatAmount(data.Total), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)

	if shop.Footer != "" {
		m.AddRow(8,
			text.NewCol(12, shop.Footer, props.Text{Size: 7, Align: align.Center, Top: 3}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate receipt pdf: %w", err)
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

// FormatAmount renders minor currency units with two decimals.
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
