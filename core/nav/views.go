// Package nav holds the static role-to-view configuration: which views each
// portal role may navigate to and where a fresh login lands.
package nav

import "github.com/shulehub/shule/core/auth"

// ViewDescriptor describes a navigable portal view.
type ViewDescriptor struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	IconRef string `json:"icon"`
}

// Registry maps each role to its ordered navigable views. It is static
// configuration: total over all roles and immutable after construction.
// No role's sequence depends on the session or on any other role's entries.
type Registry struct {
	views map[auth.Role][]ViewDescriptor
}

func NewRegistry() *Registry {
	return &Registry{
		views: map[auth.Role][]ViewDescriptor{
			auth.RoleStudent: {
				{Label: "Dashboard", Path: "/portal/student/dashboard", IconRef: "home"},
				{Label: "Attendance", Path: "/portal/student/attendance", IconRef: "calendar"},
				{Label: "Reports", Path: "/portal/student/reports", IconRef: "file-text"},
				{Label: "Messages", Path: "/portal/student/messages", IconRef: "mail"},
			},
			auth.RoleFaculty: {
				{Label: "Dashboard", Path: "/portal/faculty/dashboard", IconRef: "home"},
				{Label: "Submissions", Path: "/portal/faculty/submissions", IconRef: "inbox"},
				{Label: "Grading", Path: "/portal/faculty/grading", IconRef: "edit"},
				{Label: "Broadcast", Path: "/portal/faculty/broadcast", IconRef: "megaphone"},
			},
			auth.RoleAdmin: {
				{Label: "Dashboard", Path: "/portal/admin/dashboard", IconRef: "home"},
				{Label: "Analytics", Path: "/portal/admin/analytics", IconRef: "bar-chart"},
				{Label: "Accounts", Path: "/portal/admin/accounts", IconRef: "users"},
				{Label: "Broadcast", Path: "/portal/admin/broadcast", IconRef: "megaphone"},
			},
			auth.RoleGovernment: {
				{Label: "Dashboard", Path: "/portal/government/dashboard", IconRef: "home"},
				{Label: "Reports", Path: "/portal/government/reports", IconRef: "file-text"},
				{Label: "Compliance", Path: "/portal/government/compliance", IconRef: "shield"},
			},
		},
	}
}

// Views returns the role's ordered navigable views.
func (r *Registry) Views(role auth.Role) []ViewDescriptor {
	src := r.views[role]
	views := make([]ViewDescriptor, len(src))
	copy(views, src)
	return views
}

// DefaultView returns the role's landing view: the first of its sequence.
func (r *Registry) DefaultView(role auth.Role) ViewDescriptor {
	if views := r.views[role]; len(views) > 0 {
		return views[0]
	}
	return ViewDescriptor{}
}
