package rbac

import "github.com/J0sF3r/asilo-fronted-sub000/pkg/types"

// Capabilities is the structured permission set resolved once per session.
// Components consume these flags instead of comparing role strings.
type Capabilities struct {
	CanEditVisit           bool
	CanScheduleFollowup    bool
	CanViewAllVisits       bool
	CanViewOwnVisits       bool
	CanRecordLabResults    bool
	CanDispenseMedications bool
	CanViewHistory         bool
}

// roleCapabilities is the single authorization table for the portal.
// Visit-list scoping asymmetry: medical roles see only their own
// appointments, administrative roles see everything, and the remaining
// roles have no visit list at all.
var roleCapabilities = map[types.UserRole]Capabilities{
	types.RoleAdministracion: {
		CanEditVisit:        true,
		CanScheduleFollowup: true,
		CanViewAllVisits:    true,
		CanViewHistory:      true,
	},
	types.RoleFundacion: {
		CanViewAllVisits: true,
		CanViewHistory:   true,
	},
	types.RoleMedicoEspecialista: {
		CanEditVisit:        true,
		CanScheduleFollowup: true,
		CanViewOwnVisits:    true,
		CanViewHistory:      true,
	},
	types.RoleMedicoGeneral: {
		CanViewOwnVisits: true,
		CanViewHistory:   true,
	},
	types.RoleLaboratorio: {
		CanRecordLabResults: true,
	},
	types.RoleFarmacia: {
		CanDispenseMedications: true,
	},
}

// ResolveCapabilities returns the capability set for a role. Unknown roles
// resolve to the zero set, which authorizes nothing.
func ResolveCapabilities(role types.UserRole) Capabilities {
	return roleCapabilities[role]
}
