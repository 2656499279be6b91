package registration

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the kind of account being created.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether the role is one of the two supported values.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// RegistrationRequest carries the full two-step signup form. Which of the
// role-specific sections is populated depends on Role; the numeric doctor
// fields are pointers so that an absent value is distinguishable from zero.
type RegistrationRequest struct {
	// Step 1: identity and credentials
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
	Role            Role   `json:"role"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
	CNIC            string `json:"cnic,omitempty"`
	DoctorCNIC      string `json:"doctorCnic,omitempty"`

	// Step 2: patient profile
	DateOfBirth      string `json:"dateOfBirth,omitempty"`
	Gender           string `json:"gender,omitempty"`
	BloodGroup       string `json:"bloodGroup,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`

	// Step 2: doctor profile
	Specialization       string   `json:"specialization,omitempty"`
	YearsExperience      *int     `json:"yearsExperience,omitempty"`
	ConsultationFee      *float64 `json:"consultationFee,omitempty"`
	MedicalLicenseNumber string   `json:"medicalLicenseNumber,omitempty"`

	// Step 2: address
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode,omitempty"`
}

// FieldErrors maps form field names to validation messages. An empty map
// means the validated step may advance.
type FieldErrors map[string]string

// SubmissionPayload is the wire body of the registration POST: the full
// form plus the derived NHR number for patient accounts.
type SubmissionPayload struct {
	RegistrationRequest
	NHRNumber string `json:"nhrNumber,omitempty"`
}

// Account maps to the account table.
type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Role         Role      `db:"role" json:"role"`
	Email        string    `db:"email" json:"email"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`

	CNIC      *string `db:"cnic" json:"cnic,omitempty"`
	NHRNumber *string `db:"nhr_number" json:"nhr_number,omitempty"`

	DateOfBirth      *string `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender           *string `db:"gender" json:"gender,omitempty"`
	BloodGroup       *string `db:"blood_group" json:"blood_group,omitempty"`
	EmergencyContact *string `db:"emergency_contact" json:"emergency_contact,omitempty"`

	Specialization       *string  `db:"specialization" json:"specialization,omitempty"`
	YearsExperience      *int     `db:"years_experience" json:"years_experience,omitempty"`
	ConsultationFee      *float64 `db:"consultation_fee" json:"consultation_fee,omitempty"`
	MedicalLicenseNumber *string  `db:"medical_license_number" json:"medical_license_number,omitempty"`

	Address    string  `db:"address" json:"address"`
	City       string  `db:"city" json:"city"`
	State      *string `db:"state" json:"state,omitempty"`
	Country    string  `db:"country" json:"country"`
	PostalCode *string `db:"postal_code" json:"postal_code,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
