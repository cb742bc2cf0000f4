package dto

import "github.com/educompact/school-records/internal/app/models"

// GuardianPayload is a guardian row as submitted by the form. Rows whose
// fullName is blank are dropped before persisting.
type GuardianPayload struct {
	Relationship       string `json:"relationship"`
	FullName           string `json:"fullName"`
	Occupation         string `json:"occupation"`
	ResidentialAddress string `json:"residentialAddress"`
	ContactPhone       string `json:"contactPhone"`
	WhatsappNumber     string `json:"whatsappNumber"`
	EmailAddress       string `json:"emailAddress"`
	PreferredContact   string `json:"preferredContact"`
}

// EmergencyContactPayload is an emergency contact row as submitted by the form.
type EmergencyContactPayload struct {
	FullNames      string `json:"fullNames"`
	Relationship   string `json:"relationship"`
	ContactPhone   string `json:"contactPhone"`
	WhatsappNumber string `json:"whatsappNumber"`
}

// DoctorPayload is a doctor row as submitted by the form.
type DoctorPayload struct {
	FullNames    string `json:"fullNames"`
	ContactPhone string `json:"contactPhone"`
}

// StudentExitPayload carries exit details; it is persisted only when the
// student's status is INACTIVE.
type StudentExitPayload struct {
	DateOfExit           string `json:"dateOfExit"`
	DestinationSchool    string `json:"destinationSchool"`
	NextClass            string `json:"nextClass"`
	ReasonForExit        string `json:"reasonForExit"`
	ExitStatement        string `json:"exitStatement"`
	StudentReport        string `json:"studentReport"`
	StudentClearanceForm string `json:"studentClearanceForm"`
	OtherExitDocuments   string `json:"otherExitDocuments"`
}

// StudentRequest is the full create/replace payload for a student record.
// Date fields arrive as strings ("2006-01-02" or RFC3339) and are coerced by
// the service layer.
type StudentRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	MiddleName    string `json:"middleName"`
	Surname       string `json:"surname" binding:"required"`
	PreferredName string `json:"preferredName"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required"`
	Gender        string `json:"gender"`
	Nationality   string `json:"nationality"`
	Religion      string `json:"religion"`

	AcademicYear    string `json:"academicYear"`
	DateOfAdmission string `json:"dateOfAdmission"`
	Class           string `json:"class"`
	RegistrationNo  string `json:"registrationNo"`
	Status          string `json:"status"`

	StudentPhoto         string `json:"studentPhoto"`
	BirthCertificatNo    string `json:"birthCertificatNo"`
	BirthCertificateFile string `json:"birthCertificateFile"`
	PassportNo           string `json:"passportNo"`
	ExpiryDate           string `json:"expiryDate"`
	PassportFile         string `json:"passportFile"`
	StudentPassNo        string `json:"studentPassNo"`
	DateOfExpiry         string `json:"dateOfExpiry"`
	StudentPassFile      string `json:"studentPassFile"`

	NameOfSchool         string `json:"nameOfSchool"`
	Location             string `json:"location"`
	ReasonForExit        string `json:"reasonForExit"`
	RecentReportFile     string `json:"recentReportFile"`
	AdditionalAttachment string `json:"additionalAttachment"`

	BloodType                      string  `json:"bloodType"`
	WhoLivesWithStudentAtHome      string  `json:"whoLivesWithStudentAtHome"`
	PrimaryLanguageAtHome          string  `json:"primaryLanguageAtHome"`
	OtherChildrenAtCCIS            bool    `json:"otherChildrenAtCCIS"`
	ReferredByCurrentFamily        bool    `json:"referredByCurrentFamily"`
	PermissionForSocialMediaPhotos bool    `json:"permissionForSocialMediaPhotos"`
	SpecialInformation             string  `json:"specialInformation"`
	MedicalConditions              string  `json:"medicalConditions"`
	FeesContribution               bool    `json:"feesContribution"`
	FeesContributionPercentage     float64 `json:"feesContributionPercentage"`

	Guardians         []GuardianPayload         `json:"guardians"`
	EmergencyContacts []EmergencyContactPayload `json:"emergencyContacts"`
	Doctors           []DoctorPayload           `json:"doctors"`
	StudentExit       *StudentExitPayload       `json:"studentExit"`
}

// Pagination mirrors the list envelope's pagination block.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// StudentListResponse is the envelope for GET /students.
type StudentListResponse struct {
	Students   []models.Student `json:"students"`
	Pagination Pagination       `json:"pagination"`
}
