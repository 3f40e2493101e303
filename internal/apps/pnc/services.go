package pnc

import (
	"errors"
	"fmt"
	"time"

	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// metricsTTL bounds how stale a summary can be when another instance writes.
const metricsTTL = time.Minute

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrValidation      = errors.New("validation failed")
	ErrClienteRequired = fmt.Errorf("%w: cliente is required", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: status must be Activo or Cerrado", ErrValidation)
)

type ReportService struct {
	db      *gorm.DB
	now     func() time.Time
	summary *cache.Cache
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db:      db,
		now:     time.Now,
		summary: cache.New(metricsTTL, 5*time.Minute),
	}
}

func validate(f *ReportFields) error {
	f.Normalize()
	if f.Cliente == "" {
		return ErrClienteRequired
	}
	if f.Status != StatusActivo && f.Status != StatusCerrado {
		return ErrInvalidStatus
	}
	return nil
}

// List returns every report, newest first.
func (s *ReportService) List() ([]Report, error) {
	var reports []Report
	if err := s.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *ReportService) Get(id string) (*Report, error) {
	var report Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// GetMany returns the reports with the given ids in the order requested.
func (s *ReportService) GetMany(ids []string) ([]Report, error) {
	var found []Report
	if err := s.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	byID := make(map[string]Report, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	out := make([]Report, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
		}
		out = append(out, r)
	}
	return out, nil
}

// Create stores a new report. An empty fecha is set to today.
func (s *ReportService) Create(fields ReportFields) (*Report, error) {
	if err := validate(&fields); err != nil {
		return nil, err
	}
	if fields.Fecha == "" {
		fields.Fecha = s.now().Format("2006-01-02")
	}

	report := Report{ReportFields: fields, Title: fields.DisplayTitle()}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	s.summary.Flush()
	return &report, nil
}

// Update replaces every non-identity field. id and createdAt are kept; the
// last writer wins.
func (s *ReportService) Update(id string, fields ReportFields) (*Report, error) {
	if err := validate(&fields); err != nil {
		return nil, err
	}

	report, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	report.ReportFields = fields
	report.Title = fields.DisplayTitle()

	if err := s.db.Save(report).Error; err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	s.summary.Flush()
	return report, nil
}

func (s *ReportService) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Report{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	s.summary.Flush()
	return nil
}

// Metrics aggregates every stored report over the given period. Results are
// cached per period and day until the next write.
func (s *ReportService) Metrics(period metrics.Period) (metrics.Summary, error) {
	now := s.now()
	key := string(period) + "|" + now.UTC().Format("2006-01-02")
	if v, ok := s.summary.Get(key); ok {
		return v.(metrics.Summary), nil
	}

	reports, err := s.List()
	if err != nil {
		return metrics.Summary{}, err
	}
	summary := metrics.Summarize(MetricsRecords(reports), period, now)
	s.summary.SetDefault(key, summary)
	return summary, nil
}

// Summary returns the counts shown on the dashboard home.
func (s *ReportService) Summary() (*Summary, error) {
	var sum Summary
	if err := s.db.Model(&models.User{}).Count(&sum.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&Report{}).Count(&sum.TotalDocuments).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	if err := s.db.Model(&Report{}).Where("status = ?", StatusActivo).Count(&sum.ActiveReports).Error; err != nil {
		return nil, fmt.Errorf("failed to count active reports: %w", err)
	}
	sum.ClosedReports = sum.TotalDocuments - sum.ActiveReports
	return &sum, nil
}
