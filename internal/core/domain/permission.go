package domain

// PermissionMap maps a navigation path to an access flag for one user.
// Paths never explicitly set resolve to false: absence is not permission.
type PermissionMap map[string]bool

// Allowed reports the flag for path, defaulting to false for unknown paths.
func (p PermissionMap) Allowed(path string) bool {
	return p[path]
}
