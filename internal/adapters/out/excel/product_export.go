// internal/adapters/out/excel/product_export.go
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/MTalha250/Varzan/internal/domain/pricing"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var productHeaders = []string{
	"ID", "Type", "Name", "Category", "Price", "Discount", "FinalPrice",
	"InStock", "InHighlight", "Sizes", "DigitalPrint", "FramedPrint",
	"FramePrices", "ProductLink", "Images", "CreatedAt", "UpdatedAt",
}

// WriteProducts は商品一覧を 1 シートの xlsx として w に書き出す。
func WriteProducts(w io.Writer, items []productdom.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("excel: add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range productHeaders {
		headerRow.AddCell().SetString(h)
	}

	for _, p := range items {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(string(p.Type))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetString(p.Discount.String())
		row.AddCell().SetString(p.FinalPrice.StringFixed(2))
		row.AddCell().SetBool(p.InStock)
		row.AddCell().SetBool(p.InHighlight)
		row.AddCell().SetString(joinSizes(p.Sizes))
		row.AddCell().SetBool(p.DigitalPrint)
		row.AddCell().SetBool(p.FramedPrint)
		row.AddCell().SetString(framePrices(p))
		row.AddCell().SetString(p.ProductLink)
		row.AddCell().SetString(strings.Join(p.Images, "\n"))
		row.AddCell().SetString(p.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("excel: write: %w", err)
	}
	return nil
}

func joinSizes(sizes []pricing.SizeCode) string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, string(s))
	}
	return strings.Join(out, ",")
}

// framePrices は "A4=15.00(-10%)" 形式でサイズ順に並べる。
func framePrices(p productdom.Product) string {
	parts := []string{}
	for _, size := range p.SizeSpecificPricing.Sizes() {
		sp := p.SizeSpecificPricing[size]
		s := fmt.Sprintf("%s=%s", size, sp.FramePrice.StringFixed(2))
		if sp.FrameDiscount.IsPositive() {
			s += fmt.Sprintf("(-%s%%)", sp.FrameDiscount.String())
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
