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

// StaffService handles business logic for staff records.
type StaffService interface {
	List(ctx context.Context, search string) ([]models.Staff, error)
	GetByID(ctx context.Context, id int64) (*models.Staff, error)
	Create(ctx context.Context, req *dto.StaffRequest) (*models.Staff, error)
	Update(ctx context.Context, id int64, req *dto.StaffRequest) (*models.Staff, error)
	Delete(ctx context.Context, id int64) error
}

type staffService struct {
	staffRepo *repositories.StaffRepository
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo *repositories.StaffRepository) StaffService {
	return &staffService{staffRepo: staffRepo}
}

func (s *staffService) List(ctx context.Context, search string) ([]models.Staff, error) {
	return s.staffRepo.List(ctx, search)
}

func (s *staffService) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

func (s *staffService) Create(ctx context.Context, req *dto.StaffRequest) (*models.Staff, error) {
	staff, err := buildStaff(req)
	if err != nil {
		return nil, err
	}
	return s.staffRepo.Create(ctx, staff)
}

func (s *staffService) Update(ctx context.Context, id int64, req *dto.StaffRequest) (*models.Staff, error) {
	staff, err := buildStaff(req)
	if err != nil {
		return nil, err
	}
	return s.staffRepo.Update(ctx, id, staff)
}

func (s *staffService) Delete(ctx context.Context, id int64) error {
	return s.staffRepo.Delete(ctx, id)
}

// buildStaff converts the request payload into a model, coercing date strings
// and validating status and staff type.
func buildStaff(req *dto.StaffRequest) (*models.Staff, error) {
	status := models.RecordStatus(req.Status)
	if status == "" {
		status = models.StatusActive
	}
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid status: %s", req.Status))
	}

	var staffType *models.StaffType
	if req.StaffType != "" {
		st := models.StaffType(req.StaffType)
		if !models.ValidStaffType(st) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid staffType: %s", req.StaffType))
		}
		staffType = &st
	}

	dateOfBirth, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid dateOfBirth")
	}
	dateOfEmployment, err := helpers.ParseDate(req.DateOfEmployment)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid dateOfEmployment")
	}

	staff := &models.Staff{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		Surname:     req.Surname,
		Gender:      req.Gender,
		DateOfBirth: dateOfBirth,
		Nationality: req.Nationality,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,

		StaffID:               req.StaffID,
		Designation:           req.Designation,
		StaffType:             staffType,
		DateOfEmployment:      dateOfEmployment,
		HighestQualification:  req.HighestQualification,
		YearsOfWorkExperience: req.YearsOfWorkExperience,
		NoOfYearsAtCCIS:       req.NoOfYearsAtCCIS,
		Resume:                req.Resume,
		Comment:               req.Comment,
		Status:                status,
	}

	for _, ec := range req.EmergencyContacts {
		staff.EmergencyContacts = append(staff.EmergencyContacts, models.StaffEmergencyContact{
			FullNames:    ec.FullNames,
			Relationship: ec.Relationship,
			ContactPhone: ec.ContactPhone,
			Whatsapp:     ec.Whatsapp,
		})
	}

	if err := attachProfile(staff, req); err != nil {
		return nil, err
	}

	if req.StaffExit != nil {
		dateOfExit, err := helpers.ParseDate(req.StaffExit.DateOfExit)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid dateOfExit")
		}
		staff.StaffExit = &models.StaffExit{
			DateOfExit:                    dateOfExit,
			Notice:                        req.StaffExit.Notice,
			CertificateOfService:          req.StaffExit.CertificateOfService,
			LetterOfNoObjectionRefNo:      req.StaffExit.LetterOfNoObjectionRefNo,
			LetterOfNoObjectionAttachment: req.StaffExit.LetterOfNoObjectionAttachment,
			StaffClearanceForm:            req.StaffExit.StaffClearanceForm,
			ExitStatement:                 req.StaffExit.ExitStatement,
		}
	}

	return staff, nil
}

// attachProfile maps the profile payload matching the staff type onto the
// model. Payloads for other types are ignored.
func attachProfile(staff *models.Staff, req *dto.StaffRequest) error {
	if staff.StaffType == nil {
		return nil
	}

	switch *staff.StaffType {
	case models.StaffTypeResidentTeaching:
		if p := req.ResidentTeachingStaffProfile; p != nil {
			staff.ResidentTeachingStaffProfile = &models.ResidentTeachingProfile{
				NationalIDNo:              p.NationalIDNo,
				NationalIDAttachment:      p.NationalIDAttachment,
				NssfNo:                    p.NssfNo,
				NssfAttachment:            p.NssfAttachment,
				TinNo:                     p.TinNo,
				TinAttachment:             p.TinAttachment,
				TeachingLicenseNo:         p.TeachingLicenseNo,
				TeachingLicenseAttachment: p.TeachingLicenseAttachment,
			}
		}

	case models.StaffTypeResidentNonTeaching:
		if p := req.ResidentNonTeachingStaffProfile; p != nil {
			staff.ResidentNonTeachingStaffProfile = &models.ResidentNonTeachingProfile{
				NationalIDNo:         p.NationalIDNo,
				NationalIDAttachment: p.NationalIDAttachment,
				NssfNo:               p.NssfNo,
				NssfAttachment:       p.NssfAttachment,
				TinNo:                p.TinNo,
				TinAttachment:        p.TinAttachment,
			}
		}

	case models.StaffTypeInternationalTeaching:
		if p := req.InternationalTeachingStaffProfile; p != nil {
			expiration, err := helpers.ParseDate(p.ExpirationDate)
			if err != nil {
				return apperrors.NewBadRequestError("invalid expirationDate")
			}
			workPermitExpiry, err := helpers.ParseDate(p.WorkPermitExpirationDate)
			if err != nil {
				return apperrors.NewBadRequestError("invalid workPermitExpirationDate")
			}
			residentPermitExpiry, err := helpers.ParseDate(p.ResidentPermitExpirationDate)
			if err != nil {
				return apperrors.NewBadRequestError("invalid residentPermitExpirationDate")
			}
			passportExpiry, err := helpers.ParseDate(p.PassportExpirationDate)
			if err != nil {
				return apperrors.NewBadRequestError("invalid passportExpirationDate")
			}
			staff.InternationalTeachingStaffProfile = &models.InternationalTeachingProfile{
				TcuNo:                        p.TcuNo,
				TcuAttachment:                p.TcuAttachment,
				TeachingLicenseNo:            p.TeachingLicenseNo,
				TeachingLicenseAttachment:    p.TeachingLicenseAttachment,
				ExpirationDate:               expiration,
				WorkPermitNo:                 p.WorkPermitNo,
				WorkPermitExpirationDate:     workPermitExpiry,
				WorkPermitAttachment:         p.WorkPermitAttachment,
				ResidentPermitNo:             p.ResidentPermitNo,
				ResidentPermitExpirationDate: residentPermitExpiry,
				ResidentPermitAttachment:     p.ResidentPermitAttachment,
				PassportNo:                   p.PassportNo,
				PassportExpirationDate:       passportExpiry,
				PassportAttachment:           p.PassportAttachment,
			}
		}

	case models.StaffTypeInternationalNonTeaching:
		if p := req.InternationalNonTeachingStaffProfile; p != nil {
			workPermitExpiry, err := helpers.ParseDate(p.WorkPermitExpirationDate)
			if err != nil {
				return apperrors.NewBadRequestError("invalid workPermitExpirationDate")
			}
			residentPermitExpiry, err := helpers.ParseDate(p.ResidentPermitExpirationDate)
			if err != nil {
				return apperrors.NewBadRequestError("invalid residentPermitExpirationDate")
			}
			passportExpiry, err := helpers.ParseDate(p.PassportExpirationDate)
			if err != nil {
				return apperrors.NewBadRequestError("invalid passportExpirationDate")
			}
			staff.InternationalNonTeachingStaffProfile = &models.InternationalNonTeachingProfile{
				WorkPermitNo:                 p.WorkPermitNo,
				WorkPermitExpirationDate:     workPermitExpiry,
				WorkPermitAttachment:         p.WorkPermitAttachment,
				ResidentPermitNo:             p.ResidentPermitNo,
				ResidentPermitExpirationDate: residentPermitExpiry,
				ResidentPermitAttachment:     p.ResidentPermitAttachment,
				PassportNo:                   p.PassportNo,
				PassportExpirationDate:       passportExpiry,
				PassportAttachment:           p.PassportAttachment,
			}
		}
	}

	return nil
}
