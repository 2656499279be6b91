package registration

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ValidationError aggregates the field errors of both wizard steps for a
// server-side submission that fails validation.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("invalid registration request: %s", strings.Join(keys, ", "))
}

// Service is the serving side of the registration boundary: it re-runs both
// validators on the submitted payload, hashes the password and persists the
// account. The wizard never trusts the client-derived NHR alone; a patient
// payload arriving without one gets it derived here.
type Service struct {
	accounts AccountRepository
	digits   DigitSource
}

func NewService(accounts AccountRepository, digits DigitSource) *Service {
	if digits == nil {
		digits = NewDigitSource()
	}
	return &Service{accounts: accounts, digits: digits}
}

func (s *Service) Register(ctx context.Context, payload *SubmissionPayload) (*Account, error) {
	fields := ValidateIdentity(&payload.RegistrationRequest)
	for k, v := range ValidateProfile(&payload.RegistrationRequest) {
		fields[k] = v
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	nhr := payload.NHRNumber
	if payload.Role == RolePatient && nhr == "" {
		nhr = DeriveNHR(payload.CNIC, s.digits)
	}

	a := &Account{
		Role:         payload.Role,
		Email:        strings.TrimSpace(payload.Email),
		FirstName:    strings.TrimSpace(payload.FirstName),
		LastName:     strings.TrimSpace(payload.LastName),
		Phone:        strings.TrimSpace(payload.Phone),
		PasswordHash: string(hash),
		Address:      payload.Address,
		City:         payload.City,
		Country:      payload.Country,
		State:        optional(payload.State),
		PostalCode:   optional(payload.PostalCode),
	}

	switch payload.Role {
	case RolePatient:
		a.CNIC = optional(payload.CNIC)
		a.NHRNumber = optional(nhr)
		a.DateOfBirth = optional(payload.DateOfBirth)
		a.Gender = optional(payload.Gender)
		a.BloodGroup = optional(payload.BloodGroup)
		a.EmergencyContact = optional(payload.EmergencyContact)
	case RoleDoctor:
		a.CNIC = optional(payload.DoctorCNIC)
		a.Specialization = optional(payload.Specialization)
		a.YearsExperience = payload.YearsExperience
		a.ConsultationFee = payload.ConsultationFee
		a.MedicalLicenseNumber = optional(payload.MedicalLicenseNumber)
	}

	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	return s.accounts.List(ctx, limit, offset)
}

func (s *Service) ListAccountsByRole(ctx context.Context, role Role, limit, offset int) ([]*Account, int, error) {
	if !role.Valid() {
		return nil, 0, fmt.Errorf("invalid role: %s", role)
	}
	return s.accounts.ListByRole(ctx, role, limit, offset)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
