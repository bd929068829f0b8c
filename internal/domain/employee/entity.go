package employee

import "github.com/cmlabs-hris/presence-engine/internal/domain/auth"

// Employee is the minimal identity the presence engine needs.
type Employee struct {
	ID   string
	Name string
	Role auth.Role
}

// Names indexes employees by id.
func Names(employees []Employee) map[string]string {
	out := make(map[string]string, len(employees))
	for _, e := range employees {
		out[e.ID] = e.Name
	}
	return out
}
