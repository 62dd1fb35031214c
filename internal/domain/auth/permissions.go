package auth

const (
	RoleAdmin     = "admin"
	RoleHRManager = "hr_manager"
	RoleRecruiter = "recruiter"
	RoleManager   = "manager"
	RoleEmployee  = "employee"
)

var Roles = []string{RoleAdmin, RoleHRManager, RoleRecruiter, RoleManager, RoleEmployee}

const (
	PermUsersManage      = "users.manage"
	PermRecruitingWrite  = "recruiting.write"
	PermTemplatesWrite   = "templates.write"
	PermOnboardingWrite  = "onboarding.write"
	PermPerformanceWrite = "performance.write"
)

var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermUsersManage,
		PermRecruitingWrite,
		PermTemplatesWrite,
		PermOnboardingWrite,
		PermPerformanceWrite,
	},
	RoleHRManager: {
		PermUsersManage,
		PermRecruitingWrite,
		PermTemplatesWrite,
		PermOnboardingWrite,
		PermPerformanceWrite,
	},
	RoleRecruiter: {
		PermRecruitingWrite,
		PermTemplatesWrite,
	},
	RoleManager: {
		PermRecruitingWrite,
		PermOnboardingWrite,
		PermPerformanceWrite,
	},
	RoleEmployee: {},
}

func HasPermission(role, permission string) bool {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
