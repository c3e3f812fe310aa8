package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/apaulliao/classboard-api/internal/models"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
	"github.com/apaulliao/classboard-api/pkg/export"
)

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type daySlotSource interface {
	DaySlots(ctx context.Context, at time.Time) ([]models.TimeSlot, error)
}

type sheetRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

// ExportDocument bundles rendered bytes with transfer metadata.
type ExportDocument struct {
	FileName    string
	ContentType string
	Payload     []byte
}

// ExportService renders the effective day schedule as downloadable documents.
type ExportService struct {
	source daySlotSource
	csv    sheetRenderer
	pdf    sheetRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(source daySlotSource, csv, pdf sheetRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{source: source, csv: csv, pdf: pdf, logger: logger}
}

// DaySchedule renders the effective schedule for the given date.
//
// The sheet reflects the same half-day transformation the display uses,
// so what a teacher prints matches what the board shows.
func (s *ExportService) DaySchedule(ctx context.Context, at time.Time, format ExportFormat) (*ExportDocument, error) {
	slots, err := s.source.DaySlots(ctx, at)
	if err != nil {
		return nil, err
	}

	sheet := export.Sheet{
		Title:   fmt.Sprintf("Class Schedule %s", at.Format("2006-01-02")),
		Headers: []string{"Slot", "Name", "Start", "End", "Kind", "Minutes"},
	}
	for _, slot := range slots {
		sheet.Rows = append(sheet.Rows, []string{
			slot.ID,
			slot.Name,
			slot.Start.String(),
			slot.End.String(),
			string(slot.Kind),
			fmt.Sprintf("%d", slot.DurationSeconds()/60),
		})
	}

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case FormatCSV:
		payload, err = s.csv.Render(sheet)
		contentType = "text/csv"
	case FormatPDF:
		payload, err = s.pdf.Render(sheet)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule export")
	}

	doc := &ExportDocument{
		FileName:    fmt.Sprintf("schedule-%s.%s", at.Format("2006-01-02"), strings.ToLower(string(format))),
		ContentType: contentType,
		Payload:     payload,
	}
	s.logger.Info("rendered schedule export",
		zap.String("file", doc.FileName),
		zap.Int("slots", len(slots)),
		zap.Int("bytes", len(payload)))
	return doc, nil
}
