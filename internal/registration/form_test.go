package registration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var testDepartments = []Department{
	{ID: "dep-1", Name: "Cardiology"},
	{ID: "dep-2", Name: "Neurology"},
}

func verifiedForm(t *testing.T) Form {
	t.Helper()
	f := NewForm().SetDepartments(testDepartments).SetEmail("a@b.com").MarkOTPSent(nil).SetOTP("123456")
	f = f.ApplyVerifyResult(VerifyResult{Verified: true, Message: "OTP verified"})
	var err error
	f, err = f.SetField(FieldName, "Jane Doe")
	require.NoError(t, err)
	f, err = f.SetField(FieldContact, "123456789")
	require.NoError(t, err)
	f, err = f.SetField(FieldPassword, "hunter2")
	require.NoError(t, err)
	f, err = f.SelectDepartment("dep-2")
	require.NoError(t, err)
	f, err = f.SelectGender("Female")
	require.NoError(t, err)
	f, err = f.SelectDesignation("Senior")
	require.NoError(t, err)
	return f
}

func TestNewForm_Empty(t *testing.T) {
	f := NewForm()

	require.Equal(t, Draft{}, f.Draft())
	require.Empty(t, f.Departments())
	require.False(t, f.CanSubmit())
	require.Equal(t, DepartmentPlaceholder, f.DepartmentLabel())
	require.Equal(t, GenderPlaceholder, f.GenderLabel())
	require.Equal(t, DesignationPlaceholder, f.DesignationLabel())
}

func TestForm_SetFieldUnknown(t *testing.T) {
	_, err := NewForm().SetField(Field("ssn"), "x")
	require.ErrorIs(t, err, ErrUnknownOption)
}

func TestForm_SelectDepartment(t *testing.T) {
	f := NewForm().SetDepartments(testDepartments)

	f, err := f.SelectDepartment("dep-1")
	require.NoError(t, err)
	require.Equal(t, "dep-1", f.Draft().DepartmentID)
	require.Equal(t, "Cardiology", f.DepartmentLabel())
}

func TestForm_SelectDepartment_NoDepartments(t *testing.T) {
	f := NewForm().SetDepartments(nil)

	f, err := f.SelectDepartment("dep-1")
	require.ErrorIs(t, err, ErrUnknownOption)
	require.Equal(t, "", f.Draft().DepartmentID)
	require.Equal(t, DepartmentPlaceholder, f.DepartmentLabel())
}

func TestForm_SetDepartmentsClearsStaleSelection(t *testing.T) {
	f, err := NewForm().SetDepartments(testDepartments).SelectDepartment("dep-2")
	require.NoError(t, err)

	f = f.SetDepartments(testDepartments[:1])

	require.Equal(t, "", f.Draft().DepartmentID)
}

func TestForm_SelectGenderAndDesignation(t *testing.T) {
	f, err := NewForm().SelectGender("Other")
	require.NoError(t, err)
	f, err = f.SelectDesignation("Head of Department")
	require.NoError(t, err)

	require.Equal(t, "Other", f.GenderLabel())
	require.Equal(t, "Head of Department", f.DesignationLabel())

	_, err = f.SelectGender("Unknown")
	require.ErrorIs(t, err, ErrUnknownOption)
	_, err = f.SelectDesignation("Intern")
	require.ErrorIs(t, err, ErrUnknownOption)
}

func TestForm_SubmitGatedOnVerification(t *testing.T) {
	f := NewForm().SetEmail("a@b.com").MarkOTPSent(nil)
	f, _ = f.SetField(FieldName, "Jane")
	f, _ = f.SetField(FieldContact, "1")
	f, _ = f.SetField(FieldPassword, "p")

	require.False(t, f.CanSubmit())
	_, err := f.Payload()
	require.ErrorIs(t, err, ErrNotVerified)

	f = f.ApplyVerifyResult(VerifyResult{Message: "Invalid OTP"})
	require.False(t, f.CanSubmit())
	require.True(t, f.CanSendOTP())
}

func TestForm_Validate(t *testing.T) {
	f := NewForm()

	err := f.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"name", "email", "contact", "password"}, verr.Missing)
	require.Contains(t, err.Error(), "missing required fields: name, email")
}

func TestForm_Payload(t *testing.T) {
	f := verifiedForm(t)

	payload, err := f.Payload()
	require.NoError(t, err)
	require.Equal(t, RegisterRequest{
		Name:         "Jane Doe",
		Contact:      "123456789",
		Email:        "a@b.com",
		Password:     "hunter2",
		DepartmentID: "dep-2",
		Gender:       "Female",
		Designation:  "Senior",
	}, payload)
}

func TestForm_PayloadAllowsEmptySelections(t *testing.T) {
	f := NewForm().SetEmail("a@b.com").MarkOTPSent(nil).ApplyVerifyResult(VerifyResult{Verified: true})
	f, _ = f.SetField(FieldName, "Jane")
	f, _ = f.SetField(FieldContact, "1")
	f, _ = f.SetField(FieldPassword, "p")

	payload, err := f.Payload()
	require.NoError(t, err)
	require.Equal(t, "", payload.DepartmentID)
	require.Equal(t, "", payload.Gender)
}

// TestForm_SelectionTouchesOneField checks that any selection only changes
// the field it targets.
func TestForm_SelectionTouchesOneField(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		f := NewForm().SetDepartments(testDepartments)
		f, _ = f.SetField(FieldName, rapid.String().Draw(r, "name"))
		f, _ = f.SetField(FieldContact, rapid.String().Draw(r, "contact"))
		f, _ = f.SetField(FieldPassword, rapid.String().Draw(r, "password"))
		before := f.Draft()

		var err error
		after := before
		switch rapid.IntRange(0, 2).Draw(r, "widget") {
		case 0:
			dep := rapid.SampledFrom(testDepartments).Draw(r, "dep")
			f, err = f.SelectDepartment(dep.ID)
			after.DepartmentID = dep.ID
		case 1:
			g := rapid.SampledFrom(Genders).Draw(r, "gender")
			f, err = f.SelectGender(g)
			after.Gender = g
		case 2:
			d := rapid.SampledFrom(Designations).Draw(r, "designation")
			f, err = f.SelectDesignation(d)
			after.Designation = d
		}

		require.NoError(r, err)
		require.Equal(r, after, f.Draft())
	})
}
