package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/pkg/apperrors"
)

func validStaffRequest() *dto.StaffRequest {
	return &dto.StaffRequest{
		FirstName:   "Neema",
		Surname:     "Mushi",
		Designation: "Mathematics Teacher",
	}
}

func TestBuildStaffDefaultsToActive(t *testing.T) {
	staff, err := buildStaff(validStaffRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, staff.Status)
	assert.Nil(t, staff.StaffType)
	assert.Nil(t, staff.DateOfBirth)
}

func TestBuildStaffInvalidStatus(t *testing.T) {
	req := validStaffRequest()
	req.Status = "RETIRED"

	_, err := buildStaff(req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestBuildStaffInvalidStaffType(t *testing.T) {
	req := validStaffRequest()
	req.StaffType = "volunteer"

	_, err := buildStaff(req)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Contains(t, err.Error(), "staffType")
}

func TestBuildStaffAttachesMatchingProfileOnly(t *testing.T) {
	req := validStaffRequest()
	req.StaffType = string(models.StaffTypeResidentTeaching)
	req.ResidentTeachingStaffProfile = &dto.ResidentTeachingPayload{
		NationalIDNo:      "19900101-12345-00001-23",
		TeachingLicenseNo: "TL-4471",
	}
	// A stale payload for another type must be ignored.
	req.InternationalTeachingStaffProfile = &dto.InternationalTeachingPayload{
		WorkPermitNo: "WP-9999",
	}

	staff, err := buildStaff(req)
	require.NoError(t, err)
	require.NotNil(t, staff.ResidentTeachingStaffProfile)
	assert.Equal(t, "TL-4471", staff.ResidentTeachingStaffProfile.TeachingLicenseNo)
	assert.Nil(t, staff.InternationalTeachingStaffProfile)
	assert.Nil(t, staff.ResidentNonTeachingStaffProfile)
	assert.Nil(t, staff.InternationalNonTeachingStaffProfile)
}

func TestBuildStaffParsesInternationalProfileDates(t *testing.T) {
	req := validStaffRequest()
	req.StaffType = string(models.StaffTypeInternationalTeaching)
	req.InternationalTeachingStaffProfile = &dto.InternationalTeachingPayload{
		WorkPermitNo:             "WP-1201",
		WorkPermitExpirationDate: "2027-01-31",
		PassportExpirationDate:   "2030-06-15",
	}

	staff, err := buildStaff(req)
	require.NoError(t, err)
	profile := staff.InternationalTeachingStaffProfile
	require.NotNil(t, profile)
	require.NotNil(t, profile.WorkPermitExpirationDate)
	assert.Equal(t, 2027, profile.WorkPermitExpirationDate.Year())
	assert.Nil(t, profile.ExpirationDate)
}

func TestBuildStaffRejectsBadProfileDate(t *testing.T) {
	req := validStaffRequest()
	req.StaffType = string(models.StaffTypeInternationalTeaching)
	req.InternationalTeachingStaffProfile = &dto.InternationalTeachingPayload{
		WorkPermitExpirationDate: "31/01/2027",
	}

	_, err := buildStaff(req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestBuildStaffParsesExitPayload(t *testing.T) {
	req := validStaffRequest()
	req.Status = "INACTIVE"
	req.StaffExit = &dto.StaffExitPayload{
		DateOfExit: "2024-12-31",
		Notice:     "3 months",
	}

	staff, err := buildStaff(req)
	require.NoError(t, err)
	require.NotNil(t, staff.StaffExit)
	require.NotNil(t, staff.StaffExit.DateOfExit)
	assert.Equal(t, "3 months", staff.StaffExit.Notice)
}

func TestBuildStaffMapsEmergencyContacts(t *testing.T) {
	req := validStaffRequest()
	req.EmergencyContacts = []dto.StaffEmergencyContactPayload{
		{FullNames: "Juma Mushi", Relationship: "brother"},
	}

	staff, err := buildStaff(req)
	require.NoError(t, err)
	require.Len(t, staff.EmergencyContacts, 1)
	assert.Equal(t, "Juma Mushi", staff.EmergencyContacts[0].FullNames)
}
