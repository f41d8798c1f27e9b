package presenter

import (
	"fmt"
	"io"

	"tokoadmin/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes requests as a spreadsheet with one row per requested item.
func ExportXLSX(w io.Writer, requests []models.RestockRequest) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Restock"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{
		"request_id",
		"outlet",
		"status",
		"created_at",
		"reviewed_at",
		"product_detail_id",
		"requested_stock",
		"unit",
		"reason",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, req := range requests {
		for _, item := range req.Items {
			excelRow := []interface{}{
				req.ID,
				outletName(req),
				string(req.Status),
				req.CreatedAt.Local().Format(timeLayout),
				formatTime(req.ReviewedAt),
				item.ProductDetailID,
				item.RequestedStock,
				item.Unit,
				deref(item.Reason),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("failed to address row %d: %w", row, err)
			}
			if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}
