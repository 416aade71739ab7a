package rbac

// AccountState is the activation state of an admin account. There is no
// suspension: a rejected account is deleted outright.
type AccountState string

const (
	StatePending AccountState = "pending"
	StateActive  AccountState = "active"
)

// AccountStateOf derives the state from the stored flags.
func AccountStateOf(isAdmin, emailVerified bool) AccountState {
	if isAdmin && emailVerified {
		return StateActive
	}
	return StatePending
}

// InitialState is where a newly created admin account lands: active when a
// superadmin created it, pending otherwise.
func InitialState(creatorRole string) AccountState {
	if Normalize(creatorRole) == RoleSuperAdmin {
		return StateActive
	}
	return StatePending
}

// CanApproveAccount reports whether the requester may activate or reject
// the target account. Only a superadmin may, and never their own row.
func CanApproveAccount(requesterRole string, requesterID, targetID uint) bool {
	return Normalize(requesterRole) == RoleSuperAdmin && requesterID != targetID
}

// CanAssignRole reports whether the requester may change the target's
// role. Same rule as approval: superadmin only, never self.
func CanAssignRole(requesterRole string, requesterID, targetID uint) bool {
	return Normalize(requesterRole) == RoleSuperAdmin && requesterID != targetID
}
