package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const inquiriesSheet = "Inquiries"

var inquiryHeaders = []string{
	"ID", "Reference", "Name", "Email", "Phone", "Service",
	"Preferred Date", "Message", "Status", "Created At",
}

// ExportInquiriesToExcel writes every inquiry since the given time into an
// xlsx report under dir and returns its path.
func (s *PostgresStorage) ExportInquiriesToExcel(ctx context.Context, dir string, since time.Time) (string, error) {
	const operation = "storage.ExportInquiriesToExcel"

	inquiries, err := s.ListInquiries(ctx, since)
	if err != nil {
		return "", fmt.Errorf("%s: %w", operation, err)
	}

	f, err := BuildInquiriesWorkbook(inquiries)
	if err != nil {
		return "", fmt.Errorf("%s: %w", operation, err)
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: failed to create reports directory: %w", operation, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("inquiries_%s.xlsx", time.Now().Format("20060102_1504")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%s: failed to save Excel file: %w", operation, err)
	}

	s.logger.Info("Exported inquiries",
		zap.Int("count", len(inquiries)),
		zap.String("path", path))

	return path, nil
}

// BuildInquiriesWorkbook lays inquiries out one per row under a bold header.
func BuildInquiriesWorkbook(inquiries []Inquiry) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(inquiriesSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range inquiryHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(inquiriesSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, inq := range inquiries {
		preferred := ""
		if inq.PreferredDate != nil {
			preferred = inq.PreferredDate.Format("2006-01-02")
		}
		data := []interface{}{
			inq.ID,
			inq.Reference,
			inq.Name,
			inq.Email,
			inq.Phone,
			inq.ServiceInterest,
			preferred,
			inq.Message,
			inq.Status,
			inq.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(inquiriesSheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(inquiryHeaders), 1)
		_ = f.SetCellStyle(inquiriesSheet, "A1", last, style)
	}

	return f, nil
}
