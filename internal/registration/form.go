package registration

import (
	"fmt"
	"slices"
	"strings"
)

// Form combines the draft, the email verification and the department list.
//
// Form is immutable - all methods return a new Form rather than
// modifying the receiver.
type Form struct {
	draft        Draft
	verification Verification
	departments  []Department
}

// NewForm creates an empty form with no departments loaded.
func NewForm() Form {
	return Form{verification: NewVerification()}
}

// Draft returns a copy of the draft fields.
func (f Form) Draft() Draft { return f.draft }

// Verification returns the email verification state.
func (f Form) Verification() Verification { return f.verification }

// Departments returns the loaded department list.
func (f Form) Departments() []Department { return slices.Clone(f.departments) }

// SetDepartments replaces the department reference data.
// A previously selected department that is no longer offered is cleared.
func (f Form) SetDepartments(deps []Department) Form {
	f.departments = slices.Clone(deps)
	if f.draft.DepartmentID != "" && !f.hasDepartment(f.draft.DepartmentID) {
		f.draft.DepartmentID = ""
	}
	return f
}

// SetField writes a free-text draft field.
func (f Form) SetField(field Field, value string) (Form, error) {
	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldContact:
		f.draft.Contact = value
	case FieldPassword:
		f.draft.Password = value
	default:
		return f, fmt.Errorf("field %q: %w", field, ErrUnknownOption)
	}
	return f, nil
}

// SetEmail changes the email under verification.
func (f Form) SetEmail(email string) Form {
	f.verification = f.verification.SetEmail(email)
	return f
}

// SetOTP records the passcode entered by the user.
func (f Form) SetOTP(otp string) Form {
	f.verification = f.verification.SetOTP(otp)
	return f
}

// SelectDepartment sets the draft department. Only loaded departments are accepted.
func (f Form) SelectDepartment(id string) (Form, error) {
	if !f.hasDepartment(id) {
		return f, fmt.Errorf("department %q: %w", id, ErrUnknownOption)
	}
	f.draft.DepartmentID = id
	return f, nil
}

// SelectGender sets the draft gender to one of Genders.
func (f Form) SelectGender(gender string) (Form, error) {
	if !slices.Contains(Genders, gender) {
		return f, fmt.Errorf("gender %q: %w", gender, ErrUnknownOption)
	}
	f.draft.Gender = gender
	return f, nil
}

// SelectDesignation sets the draft designation to one of Designations.
func (f Form) SelectDesignation(designation string) (Form, error) {
	if !slices.Contains(Designations, designation) {
		return f, fmt.Errorf("designation %q: %w", designation, ErrUnknownOption)
	}
	f.draft.Designation = designation
	return f, nil
}

// MarkOTPSent applies the outcome of a send OTP request.
func (f Form) MarkOTPSent(err error) Form {
	f.verification = f.verification.MarkSent(err)
	return f
}

// ApplyVerifyResult applies the outcome of a verify OTP request.
func (f Form) ApplyVerifyResult(result VerifyResult) Form {
	f.verification = f.verification.ApplyVerifyResult(result)
	return f
}

// CanSendOTP reports whether the Send OTP action is enabled.
func (f Form) CanSendOTP() bool { return f.verification.CanSend() }

// CanVerifyOTP reports whether the Verify OTP action is enabled.
func (f Form) CanVerifyOTP() bool { return f.verification.CanVerify() }

// CanSubmit reports whether the Sign Up action is enabled.
func (f Form) CanSubmit() bool { return f.verification.OTPVerified() }

// Validate checks required fields. It does not check verification; use CanSubmit.
func (f Form) Validate() error {
	var missing []string
	if strings.TrimSpace(f.draft.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.verification.Email()) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.draft.Contact) == "" {
		missing = append(missing, "contact")
	}
	if f.draft.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Payload builds the registration request from the draft and the verified email.
func (f Form) Payload() (RegisterRequest, error) {
	if !f.CanSubmit() {
		return RegisterRequest{}, ErrNotVerified
	}
	if err := f.Validate(); err != nil {
		return RegisterRequest{}, err
	}
	return RegisterRequest{
		Name:         f.draft.Name,
		Contact:      f.draft.Contact,
		Email:        f.verification.Email(),
		Password:     f.draft.Password,
		DepartmentID: f.draft.DepartmentID,
		Gender:       f.draft.Gender,
		Designation:  f.draft.Designation,
	}, nil
}

// DepartmentLabel returns the name of the selected department, or the placeholder.
func (f Form) DepartmentLabel() string {
	for _, d := range f.departments {
		if d.ID == f.draft.DepartmentID && f.draft.DepartmentID != "" {
			return d.Name
		}
	}
	return DepartmentPlaceholder
}

// GenderLabel returns the selected gender, or the placeholder.
func (f Form) GenderLabel() string {
	if f.draft.Gender == "" {
		return GenderPlaceholder
	}
	return f.draft.Gender
}

// DesignationLabel returns the selected designation, or the placeholder.
func (f Form) DesignationLabel() string {
	if f.draft.Designation == "" {
		return DesignationPlaceholder
	}
	return f.draft.Designation
}

func (f Form) hasDepartment(id string) bool {
	return slices.ContainsFunc(f.departments, func(d Department) bool { return d.ID == id })
}
