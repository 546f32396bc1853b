package nav

import (
	"testing"

	"github.com/jobportal/web/internal/models"
)

func paths(sections []Section) []string {
	var out []string
	for _, sec := range sections {
		for _, e := range sec.Entries {
			out = append(out, e.Path)
		}
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func TestVisiblePerRole(t *testing.T) {
	tests := []struct {
		role   models.Role
		want   []string
		hidden []string
	}{
		{
			role:   models.RoleUser,
			want:   []string{"/dashboard", "/jobs", "/user/profile"},
			hidden: []string{"/post-job", "/create-employee"},
		},
		{
			role:   models.RoleEmployee,
			want:   []string{"/dashboard", "/jobs", "/user/profile", "/post-job"},
			hidden: []string{"/create-employee"},
		},
		{
			role: models.RoleAdmin,
			want: []string{"/dashboard", "/jobs", "/user/profile", "/post-job", "/create-employee"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := paths(Visible(tt.role))
			for _, p := range tt.want {
				if !contains(got, p) {
					t.Errorf("Visible(%s) missing %s", tt.role, p)
				}
			}
			for _, p := range tt.hidden {
				if contains(got, p) {
					t.Errorf("Visible(%s) must not include %s", tt.role, p)
				}
			}
		})
	}
}

// Each role up the ladder sees a superset of the one below.
func TestVisibilitySupersets(t *testing.T) {
	user := paths(Visible(models.RoleUser))
	employee := paths(Visible(models.RoleEmployee))
	admin := paths(Visible(models.RoleAdmin))

	for _, p := range user {
		if !contains(employee, p) {
			t.Errorf("employee menu missing user entry %s", p)
		}
	}
	for _, p := range employee {
		if !contains(admin, p) {
			t.Errorf("admin menu missing employee entry %s", p)
		}
	}
}

func TestVisibleKeepsOrder(t *testing.T) {
	got := paths(Visible(models.RoleAdmin))
	want := []string{"/dashboard", "/jobs", "/user/profile", "/post-job", "/create-employee"}
	if len(got) != len(want) {
		t.Fatalf("Visible(admin) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Visible(admin)[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGuestSeesActionSectionDropped(t *testing.T) {
	sections := Visible(models.RoleGuest)
	for _, sec := range sections {
		if sec.Title == "Actions" {
			t.Errorf("guest must not see the Actions section")
		}
	}
}
