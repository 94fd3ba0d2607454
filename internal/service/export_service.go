package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/models"
	appErrors "github.com/dpointtt/sun-class-app/pkg/errors"
	"github.com/dpointtt/sun-class-app/pkg/export"
)

type submissionLister interface {
	List(ctx context.Context, credential string, classID int64) ([]models.SubmissionListItem, error)
}

// ExportFile is a rendered gradebook.
type ExportFile struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ExportService renders a class gradebook from the submissions list.
type ExportService struct {
	submissions submissionLister
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(submissions submissionLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{submissions: submissions, logger: logger, now: time.Now}
}

var gradebookHeaders = []string{"Submission", "Assignment", "Student", "Submitted at", "Graded", "Grade"}

// Gradebook renders every submission of the class in collaborator order.
func (s *ExportService) Gradebook(ctx context.Context, id models.Identity, classID int64, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, validationError("Format must be csv or pdf.")
	}
	if err := requireTeacher(id, classID); err != nil {
		return nil, err
	}
	items, err := s.submissions.List(ctx, id.Credential, classID)
	if err != nil {
		return nil, logFailure(s.logger, "export gradebook", err, zap.Int64("class_id", classID))
	}

	table := export.Table{
		Title:   fmt.Sprintf("Gradebook for class %d (%s)", classID, s.now().UTC().Format("2006-01-02 15:04")),
		Headers: gradebookHeaders,
	}
	for _, item := range items {
		table.Append(
			strconv.FormatInt(item.ID, 10),
			item.AssignmentTitle,
			item.StudentName,
			deref(item.SubmittedAt),
			strconv.FormatBool(item.IsGraded),
			formatGrade(item.Grade),
		)
	}

	body, err := export.Render(table, format)
	if err != nil {
		s.logger.Error("render gradebook", zap.Int64("class_id", classID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to render gradebook")
	}
	return &ExportFile{
		FileName:    fmt.Sprintf("class-%d-gradebook.%s", classID, format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatGrade(g *float64) string {
	if g == nil {
		return ""
	}
	return strconv.FormatFloat(*g, 'f', -1, 64)
}
