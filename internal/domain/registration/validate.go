package registration

import (
	"regexp"
	"strings"
)

// cnicPattern is the national identity number format: 5 digits, 7 digits,
// 1 check digit, dash-separated (e.g. 42101-1234567-1).
var cnicPattern = regexp.MustCompile(`^\d{5}-\d{7}-\d$`)

// ValidateIdentity checks the first wizard page (identity, credentials,
// role and the role's CNIC). Every rule is evaluated independently so the
// caller receives all applicable errors at once; an empty result permits
// advancing to step 2.
//
// The password rules share one key: the min-length check runs
// unconditionally, so an empty password reports the min-length message
// rather than the required one.
func ValidateIdentity(req *RegistrationRequest) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(req.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(req.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	if req.ConfirmPassword != req.Password {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if !req.Role.Valid() {
		errs["role"] = "Please select a role"
	}
	if !req.AgreeToTerms {
		errs["agreeToTerms"] = "You must agree to the terms and conditions"
	}

	switch req.Role {
	case RolePatient:
		if req.CNIC == "" {
			errs["cnic"] = "CNIC is required"
		} else if !cnicPattern.MatchString(req.CNIC) {
			errs["cnic"] = "CNIC must match the format 12345-1234567-1"
		}
	case RoleDoctor:
		if req.DoctorCNIC == "" {
			errs["doctorCnic"] = "CNIC is required"
		} else if !cnicPattern.MatchString(req.DoctorCNIC) {
			errs["doctorCnic"] = "CNIC must match the format 12345-1234567-1"
		}
	}

	return errs
}

// ValidateProfile checks the second wizard page (address plus the profile
// fields of the role chosen in step 1). Same contract as ValidateIdentity.
//
// Zero yearsExperience and consultationFee are rejected alongside absent
// values.
func ValidateProfile(req *RegistrationRequest) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(req.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(req.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(req.Country) == "" {
		errs["country"] = "Country is required"
	}

	switch req.Role {
	case RolePatient:
		if strings.TrimSpace(req.DateOfBirth) == "" {
			errs["dateOfBirth"] = "Date of birth is required"
		}
		if strings.TrimSpace(req.Gender) == "" {
			errs["gender"] = "Gender is required"
		}
	case RoleDoctor:
		if strings.TrimSpace(req.Specialization) == "" {
			errs["specialization"] = "Specialization is required"
		}
		if req.YearsExperience == nil || *req.YearsExperience == 0 {
			errs["yearsExperience"] = "Years of experience is required"
		}
		if req.ConsultationFee == nil || *req.ConsultationFee == 0 {
			errs["consultationFee"] = "Consultation fee is required"
		}
		if strings.TrimSpace(req.MedicalLicenseNumber) == "" {
			errs["medicalLicenseNumber"] = "Medical license number is required"
		}
	}

	return errs
}
