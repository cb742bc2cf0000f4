package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/app/repositories"
)

const (
	recentStudentWindow = 30 * 24 * time.Hour
	recentStudentLimit  = 10
)

// ReportService aggregates the dashboard numbers.
type ReportService interface {
	Dashboard(ctx context.Context) (*dto.ReportResponse, error)
}

type reportService struct {
	reportRepo *repositories.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo *repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// Dashboard runs the aggregation queries concurrently. The first failure
// cancels the rest.
func (s *reportService) Dashboard(ctx context.Context) (*dto.ReportResponse, error) {
	report := &dto.ReportResponse{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.reportRepo.CountStudents(ctx, "")
		report.TotalStudents = total
		return err
	})
	g.Go(func() error {
		total, err := s.reportRepo.CountStaff(ctx)
		report.TotalStaff = total
		return err
	})
	g.Go(func() error {
		count, err := s.reportRepo.CountStudents(ctx, models.StatusActive)
		report.ActiveStudents = count
		return err
	})
	g.Go(func() error {
		count, err := s.reportRepo.CountStudents(ctx, models.StatusInactive)
		report.InactiveStudents = count
		return err
	})
	g.Go(func() error {
		counts, err := s.reportRepo.StudentsByClass(ctx)
		report.StudentsByClass = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.reportRepo.StaffByType(ctx)
		if err != nil {
			return err
		}
		for i := range counts {
			if counts[i].StaffType == "" {
				counts[i].StaffType = "Unknown"
			}
		}
		report.StaffByType = counts
		return nil
	})
	g.Go(func() error {
		since := time.Now().Add(-recentStudentWindow)
		students, err := s.reportRepo.RecentStudents(ctx, since, recentStudentLimit)
		report.RecentStudents = students
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if report.StudentsByClass == nil {
		report.StudentsByClass = []dto.ClassCount{}
	}
	if report.StaffByType == nil {
		report.StaffByType = []dto.StaffTypeCount{}
	}
	if report.RecentStudents == nil {
		report.RecentStudents = []models.Student{}
	}

	return report, nil
}
