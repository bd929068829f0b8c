package employee

import (
	"fmt"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

var (
	idAliases   = normalizer.Fields("id", "_id", "employeeId", "employee_id")
	nameAliases = append(normalizer.Aliases{
		normalizer.Path("fullName"),
		normalizer.Path("full_name"),
		normalizer.Path("name"),
		normalizer.Join(" ", "firstName", "lastName"),
		normalizer.Join(" ", "first_name", "last_name"),
	}, attendance.EmployeeNameAliases...)
	roleAliases = normalizer.Fields("role", "userRole", "user_role")
)

func Normalize(raw normalizer.Raw, idx int) Employee {
	return Employee{
		ID:   normalizer.String(raw, idAliases, fmt.Sprintf("emp-%d", idx)),
		Name: normalizer.String(raw, nameAliases, ""),
		Role: auth.ParseRole(normalizer.String(raw, roleAliases, "")),
	}
}

func NormalizeAll(raws []normalizer.Raw) []Employee {
	out := make([]Employee, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw, i)
	}
	return out
}
