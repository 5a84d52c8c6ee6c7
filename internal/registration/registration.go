// Package registration is the domain layer of the doctor sign-up flow.
//
// It holds the in-progress registration draft, the email verification state
// machine and the department reference data. It has no knowledge of HTTP,
// terminals or storage; the register mode drives it and the hospital client
// turns its payload into requests.
package registration

// Department is a hospital department a doctor can join.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Draft is the unsubmitted registration content.
type Draft struct {
	Name         string
	Contact      string
	DepartmentID string
	Password     string
	Gender       string
	Designation  string
}

// Field identifies a free-text draft field.
type Field string

const (
	FieldName     Field = "name"
	FieldContact  Field = "contact"
	FieldPassword Field = "password"
)

// Placeholder labels shown by selectors with no value.
const (
	DepartmentPlaceholder  = "Select Department"
	GenderPlaceholder      = "Select Gender"
	DesignationPlaceholder = "Select Designation"
)

// Genders lists the selectable gender values.
var Genders = []string{"Male", "Female", "Other"}

// Designations lists the selectable designation values.
var Designations = []string{"Trainee", "Senior", "Head of Department", "Assistant"}

// RegisterRequest is the body sent to create a doctor account.
type RegisterRequest struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	DepartmentID string `json:"departmentId"`
	Gender       string `json:"gender"`
	Designation  string `json:"designation"`
}
