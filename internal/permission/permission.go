// Package permission implements the role-based authorization rules for
// task assignment and related capability checks. All functions are pure:
// no state, no I/O, and no error returns. Malformed input degrades to
// the most restrictive defined behavior rather than failing, so a
// garbled role string can never grant more access than a known one.
package permission

import (
	"strings"

	"github.com/agno/worksphere/internal/model"
)

// Role is a user's role within an organization.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// Scope is the breadth of users a role may assign tasks to.
type Scope string

const (
	ScopeSelf         Scope = "self"
	ScopeProject      Scope = "project"
	ScopeOrganization Scope = "organization"
)

// Permissions is the fixed capability set for a role.
type Permissions struct {
	CanAssignTasksToSelf   bool
	CanAssignTasksToOthers bool
	CanCreateTasks         bool
	CanEditOwnTasks        bool
	CanEditOtherTasks      bool
	CanDeleteTasks         bool
	CanManageProjects      bool
	CanInviteMembers       bool
	CanManageMembers       bool
	AssignmentScope        Scope
}

// roleLevels orders roles from least to most privileged. Unknown roles
// map to 0, the lowest level.
var roleLevels = map[Role]int{
	RoleViewer: 0,
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

var rolePermissions = map[Role]Permissions{
	RoleViewer: {
		CanAssignTasksToSelf: true,
		AssignmentScope:      ScopeSelf,
	},
	RoleMember: {
		CanAssignTasksToSelf: true,
		CanCreateTasks:       true,
		CanEditOwnTasks:      true,
		AssignmentScope:      ScopeSelf,
	},
	RoleAdmin: {
		CanAssignTasksToSelf:   true,
		CanAssignTasksToOthers: true,
		CanCreateTasks:         true,
		CanEditOwnTasks:        true,
		CanEditOtherTasks:      true,
		CanDeleteTasks:         true,
		CanManageProjects:      true,
		CanInviteMembers:       true,
		CanManageMembers:       true,
		AssignmentScope:        ScopeProject,
	},
	RoleOwner: {
		CanAssignTasksToSelf:   true,
		CanAssignTasksToOthers: true,
		CanCreateTasks:         true,
		CanEditOwnTasks:        true,
		CanEditOtherTasks:      true,
		CanDeleteTasks:         true,
		CanManageProjects:      true,
		CanInviteMembers:       true,
		CanManageMembers:       true,
		AssignmentScope:        ScopeOrganization,
	},
}

// ProjectContext carries project membership for scope checks. When nil,
// the legacy permissive behavior applies and project-scoped assignment
// is allowed to any organization member.
type ProjectContext struct {
	ProjectID string
	MemberIDs map[string]bool
}

// isMember reports whether userID belongs to the project. A nil context
// is treated as "membership unknown" and allows everyone.
func (pc *ProjectContext) isMember(userID string) bool {
	if pc == nil || pc.MemberIDs == nil {
		return true
	}
	return pc.MemberIDs[userID]
}

// normalize lower-cases a role string, defaulting empty input to member.
func normalize(role string) Role {
	if role == "" {
		return RoleMember
	}
	return Role(strings.ToLower(role))
}

// ForRole returns the permission set for a role. Role matching is
// case-insensitive; an absent or unrecognized role resolves to the
// member permission set. It never fails.
func ForRole(role string) Permissions {
	if p, ok := rolePermissions[normalize(role)]; ok {
		return p
	}
	return rolePermissions[RoleMember]
}

// CanAssignTask reports whether a user with the given role may assign a
// task to the target user. Self-assignment is governed solely by
// CanAssignTasksToSelf, bypassing the others check. Assignment to other
// users requires CanAssignTasksToOthers plus a scope check: project
// scope consults projectCtx when supplied, organization scope allows
// anyone.
func CanAssignTask(role, actorID, targetID string, projectCtx *ProjectContext) bool {
	perms := ForRole(role)

	if actorID == targetID {
		return perms.CanAssignTasksToSelf
	}

	if !perms.CanAssignTasksToOthers {
		return false
	}

	switch perms.AssignmentScope {
	case ScopeSelf:
		// Reachable only with an inconsistent permission set; the
		// equality case was already handled above.
		return actorID == targetID
	case ScopeProject:
		return projectCtx.isMember(targetID)
	case ScopeOrganization:
		return true
	default:
		return false
	}
}

// AssignableMembers filters members down to those the actor may assign
// tasks to, preserving relative order.
func AssignableMembers(members []model.Member, role, actorID string, projectCtx *ProjectContext) []model.Member {
	assignable := make([]model.Member, 0, len(members))
	for _, m := range members {
		if CanAssignTask(role, actorID, m.ID, projectCtx) {
			assignable = append(assignable, m)
		}
	}
	return assignable
}

// RestrictionMessage returns a human-readable explanation of the
// role's assignment reach, used for disabled-control tooltips.
func RestrictionMessage(role string) string {
	switch ForRole(role).AssignmentScope {
	case ScopeSelf:
		if normalize(role) == RoleViewer {
			return "Viewers can only assign tasks to themselves"
		}
		return "Members can only assign tasks to themselves"
	case ScopeProject:
		return "Admins can assign tasks to project team members"
	case ScopeOrganization:
		return "Owners can assign tasks to any organization member"
	default:
		return "Task assignment not available for your role"
	}
}

// CanReceiveAssignments reports whether a user with the given role can
// be the target of a task assignment. Viewers cannot, and unlike
// permission lookups there is no member fallback here: an unknown role
// cannot receive assignments.
func CanReceiveAssignments(role string) bool {
	switch Role(strings.ToLower(role)) {
	case RoleMember, RoleAdmin, RoleOwner:
		return true
	default:
		return false
	}
}

// Level returns the numeric hierarchy level of a role. Unknown or
// absent roles map to 0, the lowest level.
func Level(role string) int {
	return roleLevels[Role(strings.ToLower(role))]
}

// HasMinimumRole reports whether the user's role meets or exceeds the
// required role in the hierarchy.
func HasMinimumRole(role, required string) bool {
	return Level(role) >= Level(required)
}
