package entity

// Identity is the authenticated caller, resolved once at the HTTP boundary
// and passed explicitly into every operation. Exactly one of Patient or
// Provider is non-nil (admins carry neither profile).
type Identity struct {
	User     *User
	Patient  *Patient
	Provider *Provider
}

// IsPatient reports whether the caller has a patient profile
func (i *Identity) IsPatient() bool {
	return i.Patient != nil
}

// IsProvider reports whether the caller has a provider profile
func (i *Identity) IsProvider() bool {
	return i.Provider != nil
}

// IsAdmin reports whether the caller is an administrative user
func (i *Identity) IsAdmin() bool {
	return i.User != nil && i.User.RoleID == RoleIDAdmin
}
