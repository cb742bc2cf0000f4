package models

import "time"

// Student defines the student model based on the 'students' table.
// Child collections are owned exclusively by the parent row; updates replace
// them wholesale rather than diffing individual children.
type Student struct {
	ID            int64     `json:"id" db:"id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	MiddleName    string    `json:"middleName" db:"middle_name"`
	Surname       string    `json:"surname" db:"surname"`
	PreferredName string    `json:"preferredName" db:"preferred_name"`
	DateOfBirth   time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Gender        string    `json:"gender" db:"gender"`
	Nationality   string    `json:"nationality" db:"nationality"`
	Religion      string    `json:"religion" db:"religion"`

	AcademicYear    string       `json:"academicYear" db:"academic_year"`
	DateOfAdmission *time.Time   `json:"dateOfAdmission" db:"date_of_admission"`
	Class           string       `json:"class" db:"class"`
	RegistrationNo  string       `json:"registrationNo" db:"registration_no"`
	Status          RecordStatus `json:"status" db:"status"`

	StudentPhoto         string     `json:"studentPhoto" db:"student_photo"`
	BirthCertificatNo    string     `json:"birthCertificatNo" db:"birth_certificat_no"`
	BirthCertificateFile string     `json:"birthCertificateFile" db:"birth_certificate_file"`
	PassportNo           string     `json:"passportNo" db:"passport_no"`
	ExpiryDate           *time.Time `json:"expiryDate" db:"expiry_date"`
	PassportFile         string     `json:"passportFile" db:"passport_file"`
	StudentPassNo        string     `json:"studentPassNo" db:"student_pass_no"`
	DateOfExpiry         *time.Time `json:"dateOfExpiry" db:"date_of_expiry"`
	StudentPassFile      string     `json:"studentPassFile" db:"student_pass_file"`

	NameOfSchool         string `json:"nameOfSchool" db:"name_of_school"`
	Location             string `json:"location" db:"location"`
	ReasonForExit        string `json:"reasonForExit" db:"reason_for_exit"`
	RecentReportFile     string `json:"recentReportFile" db:"recent_report_file"`
	AdditionalAttachment string `json:"additionalAttachment" db:"additional_attachment"`

	BloodType                      string  `json:"bloodType" db:"blood_type"`
	WhoLivesWithStudentAtHome      string  `json:"whoLivesWithStudentAtHome" db:"who_lives_with_student_at_home"`
	PrimaryLanguageAtHome          string  `json:"primaryLanguageAtHome" db:"primary_language_at_home"`
	OtherChildrenAtCCIS            bool    `json:"otherChildrenAtCCIS" db:"other_children_at_ccis"`
	ReferredByCurrentFamily        bool    `json:"referredByCurrentFamily" db:"referred_by_current_family"`
	PermissionForSocialMediaPhotos bool    `json:"permissionForSocialMediaPhotos" db:"permission_for_social_media_photos"`
	SpecialInformation             string  `json:"specialInformation" db:"special_information"`
	MedicalConditions              string  `json:"medicalConditions" db:"medical_conditions"`
	FeesContribution               bool    `json:"feesContribution" db:"fees_contribution"`
	FeesContributionPercentage     float64 `json:"feesContributionPercentage" db:"fees_contribution_percentage"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Guardians         []Guardian         `json:"guardians,omitempty"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts,omitempty"`
	Doctors           []StudentDoctor    `json:"doctors,omitempty"`
	StudentExit       *StudentExit       `json:"studentExit,omitempty"`
}

// Guardian defines a guardian row owned by a student.
type Guardian struct {
	ID                 int64  `json:"id" db:"id"`
	StudentID          int64  `json:"studentId" db:"student_id"`
	Relationship       string `json:"relationship" db:"relationship"`
	FullName           string `json:"fullName" db:"full_name"`
	Occupation         string `json:"occupation" db:"occupation"`
	ResidentialAddress string `json:"residentialAddress" db:"residential_address"`
	ContactPhone       string `json:"contactPhone" db:"contact_phone"`
	WhatsappNumber     string `json:"whatsappNumber" db:"whatsapp_number"`
	EmailAddress       string `json:"emailAddress" db:"email_address"`
	PreferredContact   string `json:"preferredContact" db:"preferred_contact"`
}

// EmergencyContact defines an emergency contact row owned by a student.
type EmergencyContact struct {
	ID             int64  `json:"id" db:"id"`
	StudentID      int64  `json:"studentId" db:"student_id"`
	FullNames      string `json:"fullNames" db:"full_names"`
	Relationship   string `json:"relationship" db:"relationship"`
	ContactPhone   string `json:"contactPhone" db:"contact_phone"`
	WhatsappNumber string `json:"whatsappNumber" db:"whatsapp_number"`
}

// StudentDoctor defines a doctor row owned by a student.
type StudentDoctor struct {
	ID           int64  `json:"id" db:"id"`
	StudentID    int64  `json:"studentId" db:"student_id"`
	FullNames    string `json:"fullNames" db:"full_names"`
	ContactPhone string `json:"contactPhone" db:"contact_phone"`
}

// StudentExit holds exit details, meaningful only while the student is INACTIVE.
type StudentExit struct {
	ID                   int64      `json:"id" db:"id"`
	StudentID            int64      `json:"studentId" db:"student_id"`
	DateOfExit           *time.Time `json:"dateOfExit" db:"date_of_exit"`
	DestinationSchool    string     `json:"destinationSchool" db:"destination_school"`
	NextClass            string     `json:"nextClass" db:"next_class"`
	ReasonForExit        string     `json:"reasonForExit" db:"reason_for_exit"`
	ExitStatement        string     `json:"exitStatement" db:"exit_statement"`
	StudentReport        string     `json:"studentReport" db:"student_report"`
	StudentClearanceForm string     `json:"studentClearanceForm" db:"student_clearance_form"`
	OtherExitDocuments   string     `json:"otherExitDocuments" db:"other_exit_documents"`
}
