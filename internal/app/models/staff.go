package models

import "time"

// Staff defines the staff model based on the 'staff' table. At most one of the
// four profile pointers is non-nil at any time, selected by StaffType.
type Staff struct {
	ID                    int64        `json:"id" db:"id"`
	FirstName             string       `json:"firstName" db:"first_name"`
	MiddleName            string       `json:"middleName" db:"middle_name"`
	Surname               string       `json:"surname" db:"surname"`
	Gender                string       `json:"gender" db:"gender"`
	DateOfBirth           *time.Time   `json:"dateOfBirth" db:"date_of_birth"`
	Nationality           string       `json:"nationality" db:"nationality"`
	Email                 string       `json:"email" db:"email"`
	Phone                 string       `json:"phone" db:"phone"`
	Address               string       `json:"address" db:"address"`
	StaffID               string       `json:"staffId" db:"staff_id"`
	Designation           string       `json:"designation" db:"designation"`
	StaffType             *StaffType   `json:"staffType" db:"staff_type"`
	DateOfEmployment      *time.Time   `json:"dateOfEmployment" db:"date_of_employment"`
	HighestQualification  string       `json:"highestQualification" db:"highest_qualification"`
	YearsOfWorkExperience int          `json:"yearsOfWorkExperience" db:"years_of_work_experience"`
	NoOfYearsAtCCIS       int          `json:"noOfYearsAtCCIS" db:"no_of_years_at_ccis"`
	Resume                string       `json:"resume" db:"resume"`
	Comment               string       `json:"comment" db:"comment"`
	Status                RecordStatus `json:"status" db:"status"`
	CreatedAt             time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time    `json:"updatedAt" db:"updated_at"`

	EmergencyContacts                    []StaffEmergencyContact            `json:"emergencyContacts,omitempty"`
	ResidentTeachingStaffProfile         *ResidentTeachingProfile           `json:"residentTeachingStaffProfile,omitempty"`
	ResidentNonTeachingStaffProfile      *ResidentNonTeachingProfile        `json:"residentNonTeachingStaffProfile,omitempty"`
	InternationalTeachingStaffProfile    *InternationalTeachingProfile      `json:"internationalTeachingStaffProfile,omitempty"`
	InternationalNonTeachingStaffProfile *InternationalNonTeachingProfile   `json:"internationalNonTeachingStaffProfile,omitempty"`
	StaffExit                            *StaffExit                         `json:"staffExit,omitempty"`
}

// StaffEmergencyContact defines an emergency contact row owned by a staff member.
type StaffEmergencyContact struct {
	ID           int64  `json:"id" db:"id"`
	StaffID      int64  `json:"staffId" db:"staff_id"`
	FullNames    string `json:"fullNames" db:"full_names"`
	Relationship string `json:"relationship" db:"relationship"`
	ContactPhone string `json:"contactPhone" db:"contact_phone"`
	Whatsapp     string `json:"whatsapp" db:"whatsapp"`
}

// ResidentTeachingProfile holds the documents of resident teaching staff.
type ResidentTeachingProfile struct {
	ID                        int64  `json:"id" db:"id"`
	StaffID                   int64  `json:"staffId" db:"staff_id"`
	NationalIDNo              string `json:"nationalIdNo" db:"national_id_no"`
	NationalIDAttachment      string `json:"nationalIdAttachment" db:"national_id_attachment"`
	NssfNo                    string `json:"nssfNo" db:"nssf_no"`
	NssfAttachment            string `json:"nssfAttachment" db:"nssf_attachment"`
	TinNo                     string `json:"tinNo" db:"tin_no"`
	TinAttachment             string `json:"tinAttachment" db:"tin_attachment"`
	TeachingLicenseNo         string `json:"teachingLicenseNo" db:"teaching_license_no"`
	TeachingLicenseAttachment string `json:"teachingLicenseAttachment" db:"teaching_license_attachment"`
}

// ResidentNonTeachingProfile holds the documents of resident non-teaching staff.
type ResidentNonTeachingProfile struct {
	ID                   int64  `json:"id" db:"id"`
	StaffID              int64  `json:"staffId" db:"staff_id"`
	NationalIDNo         string `json:"nationalIdNo" db:"national_id_no"`
	NationalIDAttachment string `json:"nationalIdAttachment" db:"national_id_attachment"`
	NssfNo               string `json:"nssfNo" db:"nssf_no"`
	NssfAttachment       string `json:"nssfAttachment" db:"nssf_attachment"`
	TinNo                string `json:"tinNo" db:"tin_no"`
	TinAttachment        string `json:"tinAttachment" db:"tin_attachment"`
}

// InternationalTeachingProfile holds the permits of international teaching staff.
type InternationalTeachingProfile struct {
	ID                           int64      `json:"id" db:"id"`
	StaffID                      int64      `json:"staffId" db:"staff_id"`
	TcuNo                        string     `json:"tcuNo" db:"tcu_no"`
	TcuAttachment                string     `json:"tcuAttachment" db:"tcu_attachment"`
	TeachingLicenseNo            string     `json:"teachingLicenseNo" db:"teaching_license_no"`
	TeachingLicenseAttachment    string     `json:"teachingLicenseAttachment" db:"teaching_license_attachment"`
	ExpirationDate               *time.Time `json:"expirationDate" db:"expiration_date"`
	WorkPermitNo                 string     `json:"workPermitNo" db:"work_permit_no"`
	WorkPermitExpirationDate     *time.Time `json:"workPermitExpirationDate" db:"work_permit_expiration_date"`
	WorkPermitAttachment         string     `json:"workPermitAttachment" db:"work_permit_attachment"`
	ResidentPermitNo             string     `json:"residentPermitNo" db:"resident_permit_no"`
	ResidentPermitExpirationDate *time.Time `json:"residentPermitExpirationDate" db:"resident_permit_expiration_date"`
	ResidentPermitAttachment     string     `json:"residentPermitAttachment" db:"resident_permit_attachment"`
	PassportNo                   string     `json:"passportNo" db:"passport_no"`
	PassportExpirationDate       *time.Time `json:"passportExpirationDate" db:"passport_expiration_date"`
	PassportAttachment           string     `json:"passportAttachment" db:"passport_attachment"`
}

// InternationalNonTeachingProfile holds the permits of international non-teaching staff.
type InternationalNonTeachingProfile struct {
	ID                           int64      `json:"id" db:"id"`
	StaffID                      int64      `json:"staffId" db:"staff_id"`
	WorkPermitNo                 string     `json:"workPermitNo" db:"work_permit_no"`
	WorkPermitExpirationDate     *time.Time `json:"workPermitExpirationDate" db:"work_permit_expiration_date"`
	WorkPermitAttachment         string     `json:"workPermitAttachment" db:"work_permit_attachment"`
	ResidentPermitNo             string     `json:"residentPermitNo" db:"resident_permit_no"`
	ResidentPermitExpirationDate *time.Time `json:"residentPermitExpirationDate" db:"resident_permit_expiration_date"`
	ResidentPermitAttachment     string     `json:"residentPermitAttachment" db:"resident_permit_attachment"`
	PassportNo                   string     `json:"passportNo" db:"passport_no"`
	PassportExpirationDate       *time.Time `json:"passportExpirationDate" db:"passport_expiration_date"`
	PassportAttachment           string     `json:"passportAttachment" db:"passport_attachment"`
}

// StaffExit holds exit details, meaningful only while the staff member is INACTIVE.
type StaffExit struct {
	ID                            int64      `json:"id" db:"id"`
	StaffID                       int64      `json:"staffId" db:"staff_id"`
	DateOfExit                    *time.Time `json:"dateOfExit" db:"date_of_exit"`
	Notice                        string     `json:"notice" db:"notice"`
	CertificateOfService          string     `json:"certificateOfService" db:"certificate_of_service"`
	LetterOfNoObjectionRefNo      string     `json:"letterOfNoObjectionRefNo" db:"letter_of_no_objection_ref_no"`
	LetterOfNoObjectionAttachment string     `json:"letterOfNoObjectionAttachment" db:"letter_of_no_objection_attachment"`
	StaffClearanceForm            string     `json:"staffClearanceForm" db:"staff_clearance_form"`
	ExitStatement                 string     `json:"exitStatement" db:"exit_statement"`
}
