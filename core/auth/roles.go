package auth

import "strings"

// Role is the closed set of portal access classes. There is no hierarchy
// among roles; two roles only ever compare by equality.
type Role string

const (
	RoleStudent    Role = "student"
	RoleFaculty    Role = "faculty"
	RoleAdmin      Role = "admin"
	RoleGovernment Role = "government"
)

var (
	AllRoles = []Role{RoleStudent, RoleFaculty, RoleAdmin, RoleGovernment}

	Roles = []RoleDescriptor{
		{Name: "Student", Value: RoleStudent},
		{Name: "Faculty", Value: RoleFaculty},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Government", Value: RoleGovernment},
	}
)

type RoleDescriptor struct {
	Name  string `json:"name"`
	Value Role   `json:"value"`
}

func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Title returns the display name of the role, e.g. "Student" for RoleStudent.
func (r Role) Title() string {
	for _, rd := range Roles {
		if rd.Value == r {
			return rd.Name
		}
	}
	return strings.Title(string(r))
}
