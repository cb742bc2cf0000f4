package models

// RecordStatus is the lifecycle state shared by students and staff.
type RecordStatus string

const (
	StatusActive   RecordStatus = "ACTIVE"
	StatusInactive RecordStatus = "INACTIVE"
)

// StaffType selects which of the four staff profile tables applies.
type StaffType string

const (
	StaffTypeResidentTeaching         StaffType = "resident_teaching_staff"
	StaffTypeResidentNonTeaching      StaffType = "resident_non_teaching_staff"
	StaffTypeInternationalTeaching    StaffType = "international_teaching_staff"
	StaffTypeInternationalNonTeaching StaffType = "international_non_teaching_staff"
)

// ValidStaffType reports whether s is one of the four known staff types.
func ValidStaffType(s StaffType) bool {
	switch s {
	case StaffTypeResidentTeaching, StaffTypeResidentNonTeaching,
		StaffTypeInternationalTeaching, StaffTypeInternationalNonTeaching:
		return true
	}
	return false
}
