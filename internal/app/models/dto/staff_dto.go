package dto

import "github.com/educompact/school-records/internal/app/models"

// StaffEmergencyContactPayload is an emergency contact row for a staff member.
// Rows whose fullNames is blank are dropped before persisting.
type StaffEmergencyContactPayload struct {
	FullNames    string `json:"fullNames"`
	Relationship string `json:"relationship"`
	ContactPhone string `json:"contactPhone"`
	Whatsapp     string `json:"whatsapp"`
}

// ResidentTeachingPayload holds the resident teaching staff profile fields.
type ResidentTeachingPayload struct {
	NationalIDNo              string `json:"nationalIdNo"`
	NationalIDAttachment      string `json:"nationalIdAttachment"`
	NssfNo                    string `json:"nssfNo"`
	NssfAttachment            string `json:"nssfAttachment"`
	TinNo                     string `json:"tinNo"`
	TinAttachment             string `json:"tinAttachment"`
	TeachingLicenseNo         string `json:"teachingLicenseNo"`
	TeachingLicenseAttachment string `json:"teachingLicenseAttachment"`
}

// ResidentNonTeachingPayload holds the resident non-teaching staff profile fields.
type ResidentNonTeachingPayload struct {
	NationalIDNo         string `json:"nationalIdNo"`
	NationalIDAttachment string `json:"nationalIdAttachment"`
	NssfNo               string `json:"nssfNo"`
	NssfAttachment       string `json:"nssfAttachment"`
	TinNo                string `json:"tinNo"`
	TinAttachment        string `json:"tinAttachment"`
}

// InternationalTeachingPayload holds the international teaching staff profile
// fields. Date fields arrive as strings and are coerced by the service layer.
type InternationalTeachingPayload struct {
	TcuNo                        string `json:"tcuNo"`
	TcuAttachment                string `json:"tcuAttachment"`
	TeachingLicenseNo            string `json:"teachingLicenseNo"`
	TeachingLicenseAttachment    string `json:"teachingLicenseAttachment"`
	ExpirationDate               string `json:"expirationDate"`
	WorkPermitNo                 string `json:"workPermitNo"`
	WorkPermitExpirationDate     string `json:"workPermitExpirationDate"`
	WorkPermitAttachment         string `json:"workPermitAttachment"`
	ResidentPermitNo             string `json:"residentPermitNo"`
	ResidentPermitExpirationDate string `json:"residentPermitExpirationDate"`
	ResidentPermitAttachment     string `json:"residentPermitAttachment"`
	PassportNo                   string `json:"passportNo"`
	PassportExpirationDate       string `json:"passportExpirationDate"`
	PassportAttachment           string `json:"passportAttachment"`
}

// InternationalNonTeachingPayload holds the international non-teaching staff
// profile fields.
type InternationalNonTeachingPayload struct {
	WorkPermitNo                 string `json:"workPermitNo"`
	WorkPermitExpirationDate     string `json:"workPermitExpirationDate"`
	WorkPermitAttachment         string `json:"workPermitAttachment"`
	ResidentPermitNo             string `json:"residentPermitNo"`
	ResidentPermitExpirationDate string `json:"residentPermitExpirationDate"`
	ResidentPermitAttachment     string `json:"residentPermitAttachment"`
	PassportNo                   string `json:"passportNo"`
	PassportExpirationDate       string `json:"passportExpirationDate"`
	PassportAttachment           string `json:"passportAttachment"`
}

// StaffExitPayload carries exit details; it is persisted only when the staff
// member's status is INACTIVE.
type StaffExitPayload struct {
	DateOfExit                    string `json:"dateOfExit"`
	Notice                        string `json:"notice"`
	CertificateOfService          string `json:"certificateOfService"`
	LetterOfNoObjectionRefNo      string `json:"letterOfNoObjectionRefNo"`
	LetterOfNoObjectionAttachment string `json:"letterOfNoObjectionAttachment"`
	StaffClearanceForm            string `json:"staffClearanceForm"`
	ExitStatement                 string `json:"exitStatement"`
}

// StaffRequest is the full create/replace payload for a staff record. Only the
// profile payload matching staffType is persisted; the rest are ignored.
type StaffRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	MiddleName  string `json:"middleName"`
	Surname     string `json:"surname" binding:"required"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`

	StaffID               string `json:"staffId"`
	Designation           string `json:"designation"`
	StaffType             string `json:"staffType"`
	DateOfEmployment      string `json:"dateOfEmployment"`
	HighestQualification  string `json:"highestQualification"`
	YearsOfWorkExperience int    `json:"yearsOfWorkExperience"`
	NoOfYearsAtCCIS       int    `json:"noOfYearsAtCCIS"`
	Resume                string `json:"resume"`
	Comment               string `json:"comment"`
	Status                string `json:"status"`

	EmergencyContacts []StaffEmergencyContactPayload `json:"emergencyContacts"`

	ResidentTeachingStaffProfile         *ResidentTeachingPayload         `json:"residentTeachingStaffProfile"`
	ResidentNonTeachingStaffProfile      *ResidentNonTeachingPayload      `json:"residentNonTeachingStaffProfile"`
	InternationalTeachingStaffProfile    *InternationalTeachingPayload    `json:"internationalTeachingStaffProfile"`
	InternationalNonTeachingStaffProfile *InternationalNonTeachingPayload `json:"internationalNonTeachingStaffProfile"`

	StaffExit *StaffExitPayload `json:"staffExit"`
}

// StaffListResponse is the envelope for GET /staff.
type StaffListResponse struct {
	Staff []models.Staff `json:"staff"`
}
