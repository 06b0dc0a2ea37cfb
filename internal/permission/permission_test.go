package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agno/worksphere/internal/model"
)

func TestForRoleScopes(t *testing.T) {
	assert.Equal(t, ScopeSelf, ForRole("viewer").AssignmentScope)
	assert.Equal(t, ScopeSelf, ForRole("member").AssignmentScope)
	assert.Equal(t, ScopeProject, ForRole("admin").AssignmentScope)
	assert.Equal(t, ScopeOrganization, ForRole("owner").AssignmentScope)
}

func TestForRoleNormalization(t *testing.T) {
	assert.Equal(t, ForRole("owner"), ForRole("OWNER"))
	assert.Equal(t, ForRole("admin"), ForRole("Admin"))

	// Unknown or absent roles fall back to the member set.
	assert.Equal(t, ForRole("member"), ForRole("bogus"))
	assert.Equal(t, ForRole("member"), ForRole(""))
}

func TestForRoleCapabilities(t *testing.T) {
	viewer := ForRole("viewer")
	assert.True(t, viewer.CanAssignTasksToSelf)
	assert.False(t, viewer.CanAssignTasksToOthers)
	assert.False(t, viewer.CanCreateTasks)

	member := ForRole("member")
	assert.True(t, member.CanCreateTasks)
	assert.True(t, member.CanEditOwnTasks)
	assert.False(t, member.CanEditOtherTasks)
	assert.False(t, member.CanInviteMembers)

	admin := ForRole("admin")
	assert.True(t, admin.CanEditOtherTasks)
	assert.True(t, admin.CanDeleteTasks)
	assert.True(t, admin.CanManageMembers)
}

func TestCanAssignTaskSelf(t *testing.T) {
	// Self-assignment follows CanAssignTasksToSelf for every role.
	for _, role := range []string{"viewer", "member", "admin", "owner"} {
		got := CanAssignTask(role, "u1", "u1", nil)
		assert.Equal(t, ForRole(role).CanAssignTasksToSelf, got, "role %s", role)
	}
}

func TestCanAssignTaskOthers(t *testing.T) {
	assert.False(t, CanAssignTask("viewer", "u1", "u2", nil))
	assert.False(t, CanAssignTask("member", "u1", "u2", nil))
	assert.True(t, CanAssignTask("admin", "u1", "u2", nil))
	assert.True(t, CanAssignTask("owner", "u1", "u2", nil))
}

func TestCanAssignTaskProjectScope(t *testing.T) {
	ctx := &ProjectContext{
		ProjectID: "p1",
		MemberIDs: map[string]bool{"u2": true},
	}

	// Admins are project-scoped: membership is enforced when known.
	assert.True(t, CanAssignTask("admin", "u1", "u2", ctx))
	assert.False(t, CanAssignTask("admin", "u1", "u3", ctx))

	// Without a project context the legacy permissive behavior holds.
	assert.True(t, CanAssignTask("admin", "u1", "u3", nil))

	// Owners are organization-scoped and ignore project membership.
	assert.True(t, CanAssignTask("owner", "u1", "u3", ctx))
}

func TestAssignableMembers(t *testing.T) {
	members := []model.Member{
		{ID: "u1", Name: "Ana"},
		{ID: "u2", Name: "Ben"},
		{ID: "u3", Name: "Cleo"},
	}

	got := AssignableMembers(members, "viewer", "u1", nil)
	assert.Equal(t, []model.Member{{ID: "u1", Name: "Ana"}}, got)

	got = AssignableMembers(members, "owner", "u1", nil)
	assert.Equal(t, members, got)

	got = AssignableMembers(members, "member", "u2", nil)
	assert.Equal(t, []model.Member{{ID: "u2", Name: "Ben"}}, got)
}

func TestRestrictionMessage(t *testing.T) {
	assert.Equal(t,
		"Viewers can only assign tasks to themselves",
		RestrictionMessage("viewer"))
	assert.Equal(t,
		"Members can only assign tasks to themselves",
		RestrictionMessage("member"))
	assert.Equal(t,
		"Admins can assign tasks to project team members",
		RestrictionMessage("admin"))
	assert.Equal(t,
		"Owners can assign tasks to any organization member",
		RestrictionMessage("owner"))
}

func TestCanReceiveAssignments(t *testing.T) {
	assert.False(t, CanReceiveAssignments("viewer"))
	assert.True(t, CanReceiveAssignments("member"))
	assert.True(t, CanReceiveAssignments("admin"))
	assert.True(t, CanReceiveAssignments("OWNER"))
	assert.False(t, CanReceiveAssignments("bogus"))
}

func TestRoleHierarchy(t *testing.T) {
	assert.Equal(t, 0, Level("viewer"))
	assert.Equal(t, 1, Level("member"))
	assert.Equal(t, 2, Level("admin"))
	assert.Equal(t, 3, Level("owner"))
	assert.Equal(t, 0, Level("bogus"))

	assert.True(t, HasMinimumRole("admin", "member"))
	assert.False(t, HasMinimumRole("member", "admin"))
	assert.True(t, HasMinimumRole("owner", "owner"))
	assert.True(t, HasMinimumRole("viewer", "viewer"))
}
