package dbx

import "strings"

// IsUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. The driver exposes no typed error for this, so the message text
// is the contract.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
