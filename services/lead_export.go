package services

import (
	"bytes"
	"context"
	"fmt"

	"btb_landing_go/services/i18n"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var leadExportColumns = []string{"created_at", "name", "email", "phone", "status", "provider", "ip_address", "delivery_error"}

// ExportLeadSubmissions writes archived leads with the given status (all when empty)
// to an Excel workbook, newest first. It returns the workbook and the number of rows.
func ExportLeadSubmissions(ctx context.Context, dbConn *gorm.DB, status string) (*bytes.Buffer, int, error) {
	submissions, err := ListLeadSubmissions(dbConn, status, 0)
	if err != nil {
		return nil, 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.sheet")
	f.SetSheetName("Sheet1", sheet)

	for i, column := range leadExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, i18n.T(ctx, "export."+column))
	}

	for i, s := range submissions {
		row := i + 2
		values := []interface{}{
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.Name,
			s.Email,
			s.Phone,
			s.Status,
			s.Provider,
			s.IPAddress,
			s.DeliveryError,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", headerStyle)
	f.SetColWidth(sheet, "A", "H", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to write excel buffer: %w", err)
	}

	return buf, len(submissions), nil
}
