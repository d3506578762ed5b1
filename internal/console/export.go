// ABOUTME: Catalog export to a spreadsheet
// ABOUTME: Walks every page and writes one row per product

package console

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/claudia1121/catalog-admin/internal/hexapi"
)

// exportHeaders are the spreadsheet column titles, matching the table the
// admin surface shows.
var exportHeaders = []string{"序號", "ID", "標題", "分類", "單位", "原價", "售價", "評分", "啟用"}

// ExportCatalog walks every catalog page and writes the products to an xlsx
// file at path. Returns the number of exported products. The in-memory page
// state is left untouched.
func (c *Console) ExportCatalog(ctx context.Context, path string) (int, error) {
	epoch := c.currentEpoch()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return 0, fmt.Errorf("building sheet: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return 0, fmt.Errorf("building sheet: %w", err)
		}
	}

	count := 0
	for page := 1; ; page++ {
		res, err := c.api.ListProducts(ctx, page)
		if !c.stillCurrent(epoch) {
			return 0, nil
		}
		if err != nil {
			if hexapi.IsAuthFailure(err) {
				c.ForceLogout(msgSessionExpired)
				return 0, err
			}
			c.notices.Show(ScopePage, msgFetchFailed)
			return 0, err
		}

		for i, p := range res.Products {
			row := []any{
				displayNumber(res.Pagination, i),
				p.ID,
				p.Title,
				p.Category,
				p.Unit,
				p.OriginPrice,
				p.Price,
				p.Rating,
				p.IsEnabled == 1,
			}
			cell, err := excelize.CoordinatesToCellName(1, count+2)
			if err != nil {
				return 0, fmt.Errorf("building sheet: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return 0, fmt.Errorf("writing row: %w", err)
			}
			count++
		}

		if !res.Pagination.HasNext || res.Pagination.CurrentPage >= res.Pagination.TotalPages {
			break
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("saving export: %w", err)
	}

	c.logger.Info("catalog exported", "path", path, "products", count)
	return count, nil
}
