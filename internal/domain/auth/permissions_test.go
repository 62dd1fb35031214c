package auth

import "testing"

func TestRolePermissionsCoverEveryRole(t *testing.T) {
	for _, role := range Roles {
		if _, ok := RolePermissions[role]; !ok {
			t.Fatalf("role %q has no permission entry", role)
		}
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleAdmin, PermUsersManage, true},
		{RoleHRManager, PermUsersManage, true},
		{RoleRecruiter, PermUsersManage, false},
		{RoleRecruiter, PermTemplatesWrite, true},
		{RoleManager, PermPerformanceWrite, true},
		{RoleEmployee, PermRecruitingWrite, false},
		{"unknown", PermRecruitingWrite, false},
	}
	for _, tc := range tests {
		if got := HasPermission(tc.role, tc.permission); got != tc.want {
			t.Fatalf("HasPermission(%q, %q) = %v, want %v", tc.role, tc.permission, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleRecruiter) {
		t.Fatal("expected recruiter to be valid")
	}
	if ValidRole("superuser") {
		t.Fatal("expected unknown role to be invalid")
	}
}
