package domain

// User represents an application user.
type User struct {
	UserID       string `json:"userID" db:"user_id"` // Primary Key (UUID)
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	AuditFields
	// OperatingUnitIDs are the organizational units assigned to the user.
	// When non-empty, journal defaulting is restricted to journals of these
	// units. Loaded separately by the repository.
	OperatingUnitIDs []string `json:"operatingUnitIDs" db:"-"`
}
