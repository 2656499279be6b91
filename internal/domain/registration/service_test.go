package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ── Mock Repository ──

type mockAccountRepo struct {
	data map[uuid.UUID]*Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{data: map[uuid.UUID]*Account{}}
}

func (m *mockAccountRepo) Create(_ context.Context, a *Account) error {
	for _, existing := range m.data {
		if strings.EqualFold(existing.Email, a.Email) {
			return ErrEmailTaken
		}
	}
	a.ID = uuid.New()
	m.data[a.ID] = a
	return nil
}
func (m *mockAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*Account, error) {
	if a, ok := m.data[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("not found")
}
func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*Account, error) {
	for _, a := range m.data {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("not found")
}
func (m *mockAccountRepo) List(_ context.Context, limit, offset int) ([]*Account, int, error) {
	var out []*Account
	for _, a := range m.data {
		out = append(out, a)
	}
	return out, len(out), nil
}
func (m *mockAccountRepo) ListByRole(_ context.Context, role Role, limit, offset int) ([]*Account, int, error) {
	var out []*Account
	for _, a := range m.data {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func newTestService() (*Service, *mockAccountRepo) {
	repo := newMockAccountRepo()
	return NewService(repo, &stubDigits{values: []int{321}}), repo
}

func patientPayload() *SubmissionPayload {
	req := validStep1Patient()
	req.DateOfBirth = "1990-04-15"
	req.Gender = "female"
	req.Address = "House 12, Street 4"
	req.City = "Karachi"
	req.Country = "Pakistan"
	return &SubmissionPayload{RegistrationRequest: req}
}

func doctorPayload() *SubmissionPayload {
	req := validStep1Doctor()
	req.Specialization = "Cardiology"
	req.YearsExperience = intPtr(8)
	req.ConsultationFee = floatPtr(2500)
	req.MedicalLicenseNumber = "PMC-44321"
	req.Address = "Clinic 3, Blue Area"
	req.City = "Islamabad"
	req.Country = "Pakistan"
	return &SubmissionPayload{RegistrationRequest: req}
}

// ── Register ──

func TestService_RegisterPatient_DerivesNHRWhenMissing(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Register(context.Background(), patientPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NHRNumber == nil || *a.NHRNumber != "NHR-234567321" {
		t.Errorf("expected derived NHR-234567321, got %v", a.NHRNumber)
	}
	if a.CNIC == nil || *a.CNIC != "42101-1234567-1" {
		t.Errorf("expected patient cnic stored, got %v", a.CNIC)
	}
}

func TestService_RegisterPatient_KeepsClientNHR(t *testing.T) {
	svc, _ := newTestService()
	payload := patientPayload()
	payload.NHRNumber = "NHR-234567888"
	a, err := svc.Register(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NHRNumber == nil || *a.NHRNumber != "NHR-234567888" {
		t.Errorf("client-derived identifier should be kept, got %v", a.NHRNumber)
	}
}

func TestService_RegisterDoctor(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Register(context.Background(), doctorPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NHRNumber != nil {
		t.Errorf("doctors must not get an NHR number, got %v", *a.NHRNumber)
	}
	if a.CNIC == nil || *a.CNIC != "99999-1111111-9" {
		t.Errorf("expected doctor cnic stored, got %v", a.CNIC)
	}
	if a.Specialization == nil || *a.Specialization != "Cardiology" {
		t.Error("doctor profile fields should be persisted")
	}
}

func TestService_RegisterHashesPassword(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Register(context.Background(), patientPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PasswordHash == "Passw0rd" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("Passw0rd")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestService_RegisterValidationErrors(t *testing.T) {
	svc, repo := newTestService()
	payload := patientPayload()
	payload.Email = ""
	payload.City = ""

	_, err := svc.Register(context.Background(), payload)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// Both steps are re-validated server-side and reported together.
	if verr.Fields["email"] == "" || verr.Fields["city"] == "" {
		t.Errorf("expected errors for both steps, got %v", verr.Fields)
	}
	if len(repo.data) != 0 {
		t.Error("nothing should be persisted on validation failure")
	}
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), patientPayload()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(context.Background(), patientPayload())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// ── Lookup ──

func TestService_GetAccount(t *testing.T) {
	svc, _ := newTestService()
	a, _ := svc.Register(context.Background(), patientPayload())

	got, err := svc.GetAccount(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "ayesha@example.com" {
		t.Errorf("unexpected account: %v", got.Email)
	}
}

func TestService_ListAccountsByRole(t *testing.T) {
	svc, _ := newTestService()
	svc.Register(context.Background(), patientPayload())
	svc.Register(context.Background(), doctorPayload())

	items, total, err := svc.ListAccountsByRole(context.Background(), RoleDoctor, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Role != RoleDoctor {
		t.Errorf("expected one doctor, got total=%d items=%d", total, len(items))
	}

	if _, _, err := svc.ListAccountsByRole(context.Background(), "nurse", 20, 0); err == nil {
		t.Error("expected error for invalid role")
	}
}
