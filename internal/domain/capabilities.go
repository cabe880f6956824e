package domain

import "github.com/google/uuid"

// Capability names one permission granted to an authenticated session.
type Capability string

const (
	CapManageUsers     Capability = "manage_users"
	CapManageCatalog   Capability = "manage_catalog"
	CapToggleActive    Capability = "toggle_active"
	CapDeleteRecords   Capability = "delete_records"
	CapCommitPurchases Capability = "commit_purchases"
	CapViewStats       Capability = "view_stats"
)

// Capabilities is the permission set derived from a session's role. It is
// computed once at authentication and passed down with the request.
type Capabilities struct {
	ManageUsers     bool `json:"manage_users"`
	ManageCatalog   bool `json:"manage_catalog"`
	ToggleActive    bool `json:"toggle_active"`
	DeleteRecords   bool `json:"delete_records"`
	CommitPurchases bool `json:"commit_purchases"`
	ViewStats       bool `json:"view_stats"`
}

// CapabilitiesFor returns the capabilities of role. Unknown roles get none.
func CapabilitiesFor(role UserRole) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			ManageUsers:     true,
			ManageCatalog:   true,
			ToggleActive:    true,
			DeleteRecords:   true,
			CommitPurchases: true,
			ViewStats:       true,
		}
	case RoleEmployee:
		return Capabilities{
			ManageCatalog: true,
			ViewStats:     true,
		}
	default:
		return Capabilities{}
	}
}

// Has reports whether the capability is granted.
func (c Capabilities) Has(capability Capability) bool {
	switch capability {
	case CapManageUsers:
		return c.ManageUsers
	case CapManageCatalog:
		return c.ManageCatalog
	case CapToggleActive:
		return c.ToggleActive
	case CapDeleteRecords:
		return c.DeleteRecords
	case CapCommitPurchases:
		return c.CommitPurchases
	case CapViewStats:
		return c.ViewStats
	default:
		return false
	}
}

// Actor is the authenticated session an operation runs on behalf of.
type Actor struct {
	UserID       uuid.UUID
	Email        string
	Role         UserRole
	Capabilities Capabilities
}

// NewActor builds an Actor with the capabilities of role.
func NewActor(userID uuid.UUID, email string, role UserRole) Actor {
	return Actor{
		UserID:       userID,
		Email:        email,
		Role:         role,
		Capabilities: CapabilitiesFor(role),
	}
}

// Can reports whether the actor holds capability.
func (a Actor) Can(capability Capability) bool {
	return a.Capabilities.Has(capability)
}
