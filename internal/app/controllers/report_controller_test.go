package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/app/services"
	"github.com/educompact/school-records/internal/pkg/apperrors"
)

type stubReportService struct {
	dashboard func(ctx context.Context) (*dto.ReportResponse, error)
}

func (s *stubReportService) Dashboard(ctx context.Context) (*dto.ReportResponse, error) {
	return s.dashboard(ctx)
}

type stubExportService struct {
	export func(ctx context.Context, query dto.ExportQuery) (*services.ExportResult, error)
}

func (s *stubExportService) Export(ctx context.Context, query dto.ExportQuery) (*services.ExportResult, error) {
	return s.export(ctx, query)
}

func newReportRouter(reports *stubReportService, exports *stubExportService) *gin.Engine {
	controller := NewReportController(reports, exports)
	router := gin.New()
	router.GET("/reports", controller.GetReports)
	router.GET("/reports/export", controller.ExportReport)
	return router
}

func TestGetReports(t *testing.T) {
	reports := &stubReportService{
		dashboard: func(_ context.Context) (*dto.ReportResponse, error) {
			return &dto.ReportResponse{
				TotalStudents:   42,
				TotalStaff:      9,
				ActiveStudents:  40,
				StudentsByClass: []dto.ClassCount{{Class: "Grade 3", Count: 14}},
				StaffByType:     []dto.StaffTypeCount{{StaffType: "Unknown", Count: 2}},
				RecentStudents:  []models.Student{},
			}, nil
		},
	}
	router := newReportRouter(reports, &stubExportService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.TotalStudents)
	assert.Equal(t, "Grade 3", resp.StudentsByClass[0].Class)
	assert.NotNil(t, resp.RecentStudents)
}

func TestGetReportsFailure(t *testing.T) {
	reports := &stubReportService{
		dashboard: func(_ context.Context) (*dto.ReportResponse, error) {
			return nil, assert.AnError
		},
	}
	router := newReportRouter(reports, &stubExportService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestExportReportCSV(t *testing.T) {
	exports := &stubExportService{
		export: func(_ context.Context, query dto.ExportQuery) (*services.ExportResult, error) {
			assert.Equal(t, "staff", query.Type)
			assert.Equal(t, "excel", query.Format)
			assert.Equal(t, "resident_teaching", query.StaffType)
			return &services.ExportResult{
				Format:   services.ExportFormatCSV,
				Filename: "staff-report-2026-09-01.csv",
				Content:  []byte("Name,Staff ID\n"),
			}, nil
		},
	}
	router := newReportRouter(&stubReportService{}, exports)

	w := httptest.NewRecorder()
	target := "/reports/export?type=staff&format=excel&staffType=resident_teaching"
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="staff-report-2026-09-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Name,Staff ID\n", w.Body.String())
}

func TestExportReportJSON(t *testing.T) {
	exports := &stubExportService{
		export: func(_ context.Context, _ dto.ExportQuery) (*services.ExportResult, error) {
			return &services.ExportResult{
				Format: services.ExportFormatJSON,
				Payload: &dto.ExportResponse{
					Data: []models.Student{{ID: 1, FirstName: "Amina"}},
					Metadata: dto.ExportMetadata{
						Total:      1,
						Type:       "students",
						ExportedBy: "System",
					},
				},
			}, nil
		},
	}
	router := newReportRouter(&stubReportService{}, exports)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	var resp dto.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Metadata.Total)
	assert.Equal(t, "students", resp.Metadata.Type)
}

func TestExportReportRejectsUnknownType(t *testing.T) {
	exports := &stubExportService{
		export: func(_ context.Context, _ dto.ExportQuery) (*services.ExportResult, error) {
			return nil, apperrors.ErrBadRequest
		},
	}
	router := newReportRouter(&stubReportService{}, exports)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/export?type=teachers", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
