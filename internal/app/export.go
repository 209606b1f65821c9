package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"clientvoice/internal/domain"
)

const exportSheet = "Avis"

// ExportReviewsXLSX renders every review, newest first, as an XLSX workbook.
func (s *QueryService) ExportReviewsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()
	rs, err := s.repo.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Client", "Note", "Commentaire", "Contact"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	for i, r := range rs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
		write(1, r.CreatedAt.UTC().Format("2006-01-02 15:04"))
		write(2, r.ClientNom)
		write(3, r.Note)
		write(4, r.Commentaire)
		write(5, contactOf(r))
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 18)
	_ = f.SetColWidth(exportSheet, "B", "B", 28)
	_ = f.SetColWidth(exportSheet, "C", "C", 6)
	_ = f.SetColWidth(exportSheet, "D", "D", 60)
	_ = f.SetColWidth(exportSheet, "E", "E", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	log.Info().Int("rows", len(rs)).Dur("elapsed", time.Since(start)).Msg("reviews exported")
	return buf.Bytes(), nil
}

func contactOf(r domain.Review) string {
	if r.Contact == nil {
		return ""
	}
	return *r.Contact
}
