package permission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Permission is a capability a user may hold against a specific file.
type Permission string

const (
	PermissionView       Permission = "VIEW"
	PermissionDownload   Permission = "DOWNLOAD"
	PermissionEdit       Permission = "EDIT"
	PermissionDelete     Permission = "DELETE"
	PermissionShare      Permission = "SHARE"
	PermissionFullAccess Permission = "FULL_ACCESS"

	errInvalidPermissionFmt = "invalid permission: %s"
)

// Validate validates the permission kind
func (p Permission) Validate() error {
	switch p {
	case PermissionView, PermissionDownload, PermissionEdit, PermissionDelete, PermissionShare, PermissionFullAccess:
		return nil
	default:
		return fmt.Errorf(errInvalidPermissionFmt, p)
	}
}

// Set is an unordered collection of permission kinds.
type Set []Permission

// Validate validates every member of the set
func (s Set) Validate() error {
	for _, p := range s {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether the exact permission kind is present in the set.
func (s Set) Contains(p Permission) bool {
	for _, held := range s {
		if held == p {
			return true
		}
	}
	return false
}

// Satisfies reports whether the set grants the requested permission.
// FULL_ACCESS satisfies every permission kind.
func (s Set) Satisfies(p Permission) bool {
	return s.Contains(PermissionFullAccess) || s.Contains(p)
}

// FullSet returns the set granted to uploaders on their own files.
func FullSet() Set {
	return Set{PermissionFullAccess}
}

// Record holds the recorded permission set for one (file, user) pair.
// At most one record exists per pair; updates replace the whole set.
type Record struct {
	FileID      uuid.UUID
	UserID      uuid.UUID
	Permissions Set
	CreatedAt   time.Time
}

type SetPermissionsInput struct {
	FileID      uuid.UUID
	UserID      uuid.UUID
	Permissions Set
}
