package registration

import (
	"context"
	"errors"
)

// ErrSubmitNotReady reports a Submit call made while the wizard is not at
// step 2, so a mis-sequenced call cannot be mistaken for progress.
var ErrSubmitNotReady = errors.New("registration wizard is not at step 2")

// State is the wizard's position in the registration flow.
type State int

const (
	// StateStep1Editing collects identity and credentials.
	StateStep1Editing State = iota
	// StateStep2Editing collects the role profile and address.
	StateStep2Editing
	// StateSubmitting is held for the duration of the persistence call.
	StateSubmitting
	// StateSucceeded is terminal; the account was created.
	StateSucceeded
)

// Submitter is the persistence boundary the wizard calls exactly once per
// submission attempt. A nil return means the account was created; a non-nil
// error carries the message to surface to the user.
type Submitter interface {
	Submit(ctx context.Context, payload SubmissionPayload) error
}

// Wizard drives the two-step registration flow. Each transition takes a
// fresh snapshot of the form, so the wizard never shares mutable state with
// the caller. One wizard serves one signup attempt; it is not safe for
// concurrent use.
type Wizard struct {
	state     State
	req       RegistrationRequest
	fieldErrs FieldErrors
	formErr   string
	nhr       string
	digits    DigitSource
	submitter Submitter
}

func NewWizard(submitter Submitter, digits DigitSource) *Wizard {
	if digits == nil {
		digits = NewDigitSource()
	}
	return &Wizard{
		state:     StateStep1Editing,
		digits:    digits,
		submitter: submitter,
	}
}

// State returns the wizard's current state.
func (w *Wizard) State() State { return w.state }

// FieldErrors returns the error map produced by the last validation.
func (w *Wizard) FieldErrors() FieldErrors { return w.fieldErrs }

// FormError returns the banner-level message from the last failed
// submission, or "" if none.
func (w *Wizard) FormError() string { return w.formErr }

// NHRNumber returns the derived health record number, or "" for doctor
// accounts and patients that have not passed step 1 yet.
func (w *Wizard) NHRNumber() string { return w.nhr }

// Request returns the last accepted form snapshot.
func (w *Wizard) Request() RegistrationRequest { return w.req }

// Advance validates the step-1 snapshot and, when it is clean, moves the
// wizard to step 2. The NHR number is derived on the first successful pass
// for a patient with a CNIC and never recomputed afterwards, so stepping
// back and re-advancing keeps the identifier stable.
func (w *Wizard) Advance(req RegistrationRequest) bool {
	if w.state != StateStep1Editing {
		return false
	}
	w.fieldErrs = ValidateIdentity(&req)
	if len(w.fieldErrs) > 0 {
		return false
	}
	w.req = req
	if req.Role == RolePatient && req.CNIC != "" && w.nhr == "" {
		w.nhr = DeriveNHR(req.CNIC, w.digits)
	}
	w.state = StateStep2Editing
	return true
}

// Back returns from step 2 to step 1. Derived state (including the NHR
// number) is kept.
func (w *Wizard) Back() bool {
	if w.state != StateStep2Editing {
		return false
	}
	w.state = StateStep1Editing
	return true
}

// Submit validates the step-2 snapshot, assembles the full payload and
// issues the single persistence call. On success the wizard is done; on
// failure the server's message (or the submitter's generic fallback) is
// recorded and the wizard returns to step 2 so the user can correct and
// resubmit. There are no automatic retries. Calling Submit outside step 2
// returns ErrSubmitNotReady; a validation-blocked call returns nil with
// the problems in FieldErrors.
func (w *Wizard) Submit(ctx context.Context, req RegistrationRequest) error {
	if w.state != StateStep2Editing {
		return ErrSubmitNotReady
	}
	w.formErr = ""
	req.Role = w.req.Role
	w.fieldErrs = ValidateProfile(&req)
	if len(w.fieldErrs) > 0 {
		return nil
	}

	merged := w.req
	merged.DateOfBirth = req.DateOfBirth
	merged.Gender = req.Gender
	merged.BloodGroup = req.BloodGroup
	merged.EmergencyContact = req.EmergencyContact
	merged.Specialization = req.Specialization
	merged.YearsExperience = req.YearsExperience
	merged.ConsultationFee = req.ConsultationFee
	merged.MedicalLicenseNumber = req.MedicalLicenseNumber
	merged.Address = req.Address
	merged.City = req.City
	merged.State = req.State
	merged.Country = req.Country
	merged.PostalCode = req.PostalCode
	w.req = merged

	w.state = StateSubmitting
	err := w.submitter.Submit(ctx, SubmissionPayload{
		RegistrationRequest: merged,
		NHRNumber:           w.nhr,
	})
	if err != nil {
		w.formErr = err.Error()
		w.state = StateStep2Editing
		return err
	}
	w.state = StateSucceeded
	return nil
}
