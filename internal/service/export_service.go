package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
	"github.com/campushub/college-api/pkg/export"
)

// ExportFormat selects the download encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type exportAttendanceStore interface {
	ListReports(ctx context.Context, attendanceID string) ([]models.AttendanceReportRow, error)
}

type exportResultStore interface {
	ListBySubject(ctx context.Context, subjectID string) ([]models.StudentResultRow, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders attendance and result datasets as CSV or PDF.
type ExportService struct {
	attendance exportAttendanceStore
	results    exportResultStore
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(attendance exportAttendanceStore, results exportResultStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		attendance: attendance,
		results:    results,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// AttendanceReport renders one session's presence marks.
func (s *ExportService) AttendanceReport(ctx context.Context, attendanceID string, format ExportFormat) (*ExportFile, error) {
	reports, err := s.attendance.ListReports(ctx, attendanceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance reports")
	}

	data := export.Dataset{
		Headers: []string{"Student", "Present", "Date"},
	}
	for _, report := range reports {
		present := "No"
		if report.Present {
			present = "Yes"
		}
		data.Rows = append(data.Rows, map[string]string{
			"Student": report.StudentName,
			"Present": present,
			"Date":    report.CreatedAt.Format("2006-01-02"),
		})
	}

	return s.render(data, fmt.Sprintf("attendance-%s", attendanceID), "Attendance Report", format)
}

// SubjectResults renders every student's marks for one subject.
func (s *ExportService) SubjectResults(ctx context.Context, subjectID string, format ExportFormat) (*ExportFile, error) {
	results, err := s.results.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject results")
	}

	data := export.Dataset{
		Headers: []string{"Subject", "Student Profile", "Exam", "Assignment"},
	}
	for _, result := range results {
		data.Rows = append(data.Rows, map[string]string{
			"Subject":         result.SubjectName,
			"Student Profile": result.StudentProfileID,
			"Exam":            strconv.FormatFloat(result.ExamMarks, 'f', 1, 64),
			"Assignment":      strconv.FormatFloat(result.AssignmentMarks, 'f', 1, 64),
		})
	}

	return s.render(data, fmt.Sprintf("results-%s", subjectID), "Subject Results", format)
}

func (s *ExportService) render(data export.Dataset, baseName, title string, format ExportFormat) (*ExportFile, error) {
	switch format {
	case ExportFormatCSV, "":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			FileName:    baseName + ".csv",
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			FileName:    baseName + ".pdf",
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
