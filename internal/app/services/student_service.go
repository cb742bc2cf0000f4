package services

import (
	"context"
	"fmt"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/app/repositories"
	"github.com/educompact/school-records/internal/pkg/apperrors"
	"github.com/educompact/school-records/internal/pkg/helpers"
)

// StudentService handles business logic for student records.
type StudentService interface {
	List(ctx context.Context, search string, page, limit int) ([]models.Student, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req *dto.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

func (s *studentService) List(ctx context.Context, search string, page, limit int) ([]models.Student, int64, error) {
	return s.studentRepo.List(ctx, search, page, limit)
}

func (s *studentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

func (s *studentService) Create(ctx context.Context, req *dto.StudentRequest) (*models.Student, error) {
	student, err := buildStudent(req)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.Create(ctx, student)
}

func (s *studentService) Update(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error) {
	student, err := buildStudent(req)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.Update(ctx, id, student)
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}

// buildStudent converts the request payload into a model, coercing date
// strings and validating the status value.
func buildStudent(req *dto.StudentRequest) (*models.Student, error) {
	status := models.RecordStatus(req.Status)
	if status == "" {
		status = models.StatusActive
	}
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid status: %s", req.Status))
	}

	dateOfBirth, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid dateOfBirth")
	}
	if dateOfBirth == nil {
		return nil, apperrors.NewBadRequestError("dateOfBirth is required")
	}

	dateOfAdmission, err := helpers.ParseDate(req.DateOfAdmission)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid dateOfAdmission")
	}
	expiryDate, err := helpers.ParseDate(req.ExpiryDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid expiryDate")
	}
	dateOfExpiry, err := helpers.ParseDate(req.DateOfExpiry)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid dateOfExpiry")
	}

	student := &models.Student{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		Surname:       req.Surname,
		PreferredName: req.PreferredName,
		DateOfBirth:   *dateOfBirth,
		Gender:        req.Gender,
		Nationality:   req.Nationality,
		Religion:      req.Religion,

		AcademicYear:    req.AcademicYear,
		DateOfAdmission: dateOfAdmission,
		Class:           req.Class,
		RegistrationNo:  req.RegistrationNo,
		Status:          status,

		StudentPhoto:         req.StudentPhoto,
		BirthCertificatNo:    req.BirthCertificatNo,
		BirthCertificateFile: req.BirthCertificateFile,
		PassportNo:           req.PassportNo,
		ExpiryDate:           expiryDate,
		PassportFile:         req.PassportFile,
		StudentPassNo:        req.StudentPassNo,
		DateOfExpiry:         dateOfExpiry,
		StudentPassFile:      req.StudentPassFile,

		NameOfSchool:         req.NameOfSchool,
		Location:             req.Location,
		ReasonForExit:        req.ReasonForExit,
		RecentReportFile:     req.RecentReportFile,
		AdditionalAttachment: req.AdditionalAttachment,

		BloodType:                      req.BloodType,
		WhoLivesWithStudentAtHome:      req.WhoLivesWithStudentAtHome,
		PrimaryLanguageAtHome:          req.PrimaryLanguageAtHome,
		OtherChildrenAtCCIS:            req.OtherChildrenAtCCIS,
		ReferredByCurrentFamily:        req.ReferredByCurrentFamily,
		PermissionForSocialMediaPhotos: req.PermissionForSocialMediaPhotos,
		SpecialInformation:             req.SpecialInformation,
		MedicalConditions:              req.MedicalConditions,
		FeesContribution:               req.FeesContribution,
		FeesContributionPercentage:     req.FeesContributionPercentage,
	}

	for _, g := range req.Guardians {
		student.Guardians = append(student.Guardians, models.Guardian{
			Relationship:       g.Relationship,
			FullName:           g.FullName,
			Occupation:         g.Occupation,
			ResidentialAddress: g.ResidentialAddress,
			ContactPhone:       g.ContactPhone,
			WhatsappNumber:     g.WhatsappNumber,
			EmailAddress:       g.EmailAddress,
			PreferredContact:   g.PreferredContact,
		})
	}
	for _, ec := range req.EmergencyContacts {
		student.EmergencyContacts = append(student.EmergencyContacts, models.EmergencyContact{
			FullNames:      ec.FullNames,
			Relationship:   ec.Relationship,
			ContactPhone:   ec.ContactPhone,
			WhatsappNumber: ec.WhatsappNumber,
		})
	}
	for _, d := range req.Doctors {
		student.Doctors = append(student.Doctors, models.StudentDoctor{
			FullNames:    d.FullNames,
			ContactPhone: d.ContactPhone,
		})
	}

	if req.StudentExit != nil {
		dateOfExit, err := helpers.ParseDate(req.StudentExit.DateOfExit)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid dateOfExit")
		}
		student.StudentExit = &models.StudentExit{
			DateOfExit:           dateOfExit,
			DestinationSchool:    req.StudentExit.DestinationSchool,
			NextClass:            req.StudentExit.NextClass,
			ReasonForExit:        req.StudentExit.ReasonForExit,
			ExitStatement:        req.StudentExit.ExitStatement,
			StudentReport:        req.StudentExit.StudentReport,
			StudentClearanceForm: req.StudentExit.StudentClearanceForm,
			OtherExitDocuments:   req.StudentExit.OtherExitDocuments,
		}
	}

	return student, nil
}
