// Package nav computes which menu entries the layout shows for the
// current role. Pure and synchronous: hiding an entry is a UX
// convenience only, enforcement stays with the route guard.
package nav

import "github.com/jobportal/web/internal/models"

// Entry is one sidebar link. An empty Roles list means the entry is
// visible to every authenticated role.
type Entry struct {
	Path  string
	Label string
	Icon  string
	Roles []models.Role
}

// Section groups entries under a sidebar heading.
type Section struct {
	Title   string
	Entries []Entry
}

// menu is the full static definition; Visible filters it per render.
var menu = []Section{
	{
		Title: "Main",
		Entries: []Entry{
			{Path: "/dashboard", Label: "Dashboard", Icon: "icon-dashboard"},
			{Path: "/jobs", Label: "Latest Jobs", Icon: "icon-jobs"},
			{Path: "/user/profile", Label: "Update Profile", Icon: "icon-profile"},
		},
	},
	{
		Title: "Actions",
		Entries: []Entry{
			{Path: "/post-job", Label: "Post Job", Icon: "icon-post-job",
				Roles: []models.Role{models.RoleEmployee, models.RoleAdmin}},
			{Path: "/create-employee", Label: "Create Employee", Icon: "icon-employees",
				Roles: []models.Role{models.RoleAdmin}},
		},
	},
}

func (e Entry) visibleTo(role models.Role) bool {
	if len(e.Roles) == 0 {
		return true
	}
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Visible returns the ordered subset of the menu the given role may
// see. Sections with no remaining entries are dropped.
func Visible(role models.Role) []Section {
	var out []Section
	for _, sec := range menu {
		var entries []Entry
		for _, e := range sec.Entries {
			if e.visibleTo(role) {
				entries = append(entries, e)
			}
		}
		if len(entries) > 0 {
			out = append(out, Section{Title: sec.Title, Entries: entries})
		}
	}
	return out
}
