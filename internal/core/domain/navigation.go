package domain

// MenuEntry describes one destination in the application's navigation.
type MenuEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Icon    string `json:"icon"`
	Section string `json:"section,omitempty"`
}

// PathCatalog is the single ordered list of recognized navigation paths.
// It is consumed by both the navigation resolver and the permission store,
// so the menu and the writable permission keys can never drift apart.
var PathCatalog = []MenuEntry{
	{Name: "Dashboard", Path: "/admin/Dashboard", Icon: "dashboard"},
	{Name: "Profile", Path: "/admin/Profile", Icon: "person"},
	{Name: "Upload Report", Path: "/admin/UploadReport", Icon: "upload"},
	{Name: "Movement Reports", Path: "/admin/Reports", Icon: "assessment"},
	{Name: "Create User", Path: "/admin/CreateUser", Icon: "person_add"},
	{Name: "Users", Path: "/admin/Users", Icon: "people"},
	{Name: "Teams", Path: "/admin/Teams", Icon: "groups"},
	{Name: "Team Messages", Path: "/admin/TeamMessages", Icon: "chat"},
	{Name: "Company Names", Path: "/admin/CompanyNames", Icon: "business"},
	{Name: "Departments", Path: "/admin/Departments", Icon: "apartment"},
	{Name: "Designations", Path: "/admin/Designations", Icon: "badge"},
	{Name: "Branches", Path: "/admin/Branches", Icon: "account_tree"},
	{Name: "Party Names", Path: "/admin/PartyNames", Icon: "handshake"},
	{Name: "Visiting Statuses", Path: "/admin/VisitingStatuses", Icon: "fact_check"},
	{Name: "Roles", Path: "/admin/Roles", Icon: "admin_panel_settings"},
}

// KnownPath reports whether path is in the catalog.
func KnownPath(path string) bool {
	for _, e := range PathCatalog {
		if e.Path == path {
			return true
		}
	}
	return false
}

// SectionFor returns the sidebar section header for a role. The section is
// purely presentational; access is gated by the permission map alone.
func SectionFor(role Role) string {
	switch role {
	case RoleAdmin:
		return "Administration"
	case RoleTeamLeader:
		return "Team Management"
	case RoleManager:
		return "Accounts"
	case RoleUser:
		return "My Workspace"
	default:
		return ""
	}
}

// ResolveMenu computes the ordered menu for a user: the subsequence of the
// catalog whose paths the permission map allows, in catalog order. An empty
// or nil map yields an empty menu; the resolver never fails open.
func ResolveMenu(role Role, permissions PermissionMap, catalog []MenuEntry) []MenuEntry {
	entries := make([]MenuEntry, 0, len(catalog))
	if len(permissions) == 0 {
		return entries
	}
	section := SectionFor(role)
	for _, e := range catalog {
		if permissions.Allowed(e.Path) {
			e.Section = section
			entries = append(entries, e)
		}
	}
	return entries
}
