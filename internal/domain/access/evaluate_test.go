package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errCompanyMissing = errors.New("company not found")

func TestEvaluate(t *testing.T) {
	member := Facts{ActorID: "e1", ActorCompanyID: "c1", CompanyID: "c1"}
	admin := member
	admin.IsAdmin = true
	outsider := Facts{ActorID: "e9", ActorCompanyID: "c2", CompanyID: "c1"}
	homeless := Facts{ActorID: "e8", CompanyID: "c1"}

	teamMember := member
	teamMember.TeamID = "t1"
	teamMember.IsTeamMember = true
	teamOutsider := member
	teamOutsider.TeamID = "t1"
	teamAdminOutsider := teamOutsider
	teamAdminOutsider.IsAdmin = true

	staleAdmin := outsider
	staleAdmin.IsAdmin = true

	cases := []struct {
		name   string
		facts  Facts
		action Action
		want   error
	}{
		{"missing entity wins over everything", Facts{Missing: errCompanyMissing, IsAdmin: true}, ActionInviteIssue, errCompanyMissing},

		{"admin issues invite", admin, ActionInviteIssue, nil},
		{"member cannot issue invite", member, ActionInviteIssue, ErrAdminRequired},
		{"member cannot list invites", member, ActionInviteList, ErrAdminRequired},
		{"admin assigns role", admin, ActionRoleAssign, nil},
		{"member cannot assign role", member, ActionRoleAssign, ErrAdminRequired},
		{"admin deletes company", admin, ActionCompanyDelete, nil},
		{"admin flag from another company is ignored", staleAdmin, ActionRoleList, ErrAdminRequired},

		{"admin creates company chat", admin, ActionChatCreate, nil},
		{"member cannot create company chat", member, ActionChatCreate, ErrAdminRequired},
		{"team member creates team chat", teamMember, ActionChatCreate, nil},
		{"admin outside team cannot create team chat", teamAdminOutsider, ActionChatCreate, ErrNotTeamMember},

		{"team member reads team chat", teamMember, ActionChatRead, nil},
		{"non member cannot read team chat", teamOutsider, ActionChatRead, ErrNotTeamMember},
		{"admin outside team cannot read team chat", teamAdminOutsider, ActionChatRead, ErrNotTeamMember},
		{"team member edits team document", teamMember, ActionDocumentEdit, nil},
		{"non member cannot create team document", teamOutsider, ActionDocumentCreate, ErrNotTeamMember},
		{"team member manages members", teamMember, ActionTeamMembersManage, nil},
		{"non member cannot manage members", teamOutsider, ActionTeamMembersManage, ErrNotTeamMember},

		{"member reads company chat", member, ActionChatRead, nil},
		{"outsider cannot read company chat", outsider, ActionChatRead, ErrNotCompanyMember},
		{"employee without company is not a member", homeless, ActionCompanyRead, ErrNotCompanyMember},
		{"member creates company document", member, ActionDocumentCreate, nil},
		{"member creates team", member, ActionTeamCreate, nil},
		{"outsider cannot create team", outsider, ActionTeamCreate, ErrNotCompanyMember},
		{"member reads team directory", teamOutsider, ActionTeamRead, nil},

		{"unknown action", admin, Action("company.rename"), ErrUnknownAction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(tc.facts, tc.action)
			if tc.want == nil {
				assert.True(t, d.Allowed)
				assert.NoError(t, d.Err())
				return
			}
			assert.False(t, d.Allowed)
			assert.ErrorIs(t, d.Err(), tc.want)
		})
	}
}

func TestEvaluate_MessageMutation(t *testing.T) {
	company := Facts{ActorID: "e1", ActorCompanyID: "c1", CompanyID: "c1", AuthorID: "e1"}

	notAuthor := company
	notAuthor.AuthorID = "e2"

	adminNotAuthor := notAuthor
	adminNotAuthor.IsAdmin = true

	teamAuthor := company
	teamAuthor.TeamID = "t1"
	teamAuthor.IsTeamMember = true

	formerTeamAuthor := teamAuthor
	formerTeamAuthor.IsTeamMember = false

	outsiderAuthor := company
	outsiderAuthor.ActorCompanyID = "c2"

	cases := []struct {
		name   string
		facts  Facts
		action Action
		want   error
	}{
		{"author edits", company, ActionMessageEdit, nil},
		{"non author cannot edit", notAuthor, ActionMessageEdit, ErrNotMessageAuthor},
		{"admin cannot edit another author's message", adminNotAuthor, ActionMessageEdit, ErrNotMessageAuthor},
		{"author deletes", company, ActionMessageDelete, nil},
		{"admin deletes another author's message", adminNotAuthor, ActionMessageDelete, nil},
		{"non author non admin cannot delete", notAuthor, ActionMessageDelete, ErrNotMessageAuthor},
		{"team author edits", teamAuthor, ActionMessageEdit, nil},
		{"author who left the team cannot edit", formerTeamAuthor, ActionMessageEdit, ErrNotTeamMember},
		{"author who left the company cannot delete", outsiderAuthor, ActionMessageDelete, ErrNotCompanyMember},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Evaluate(tc.facts, tc.action).Err()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDenyReasonsWrapForbidden(t *testing.T) {
	for _, err := range []error{ErrAdminRequired, ErrNotTeamMember, ErrNotCompanyMember, ErrNotMessageAuthor, ErrUnknownAction} {
		assert.ErrorIs(t, err, ErrForbidden)
	}
}
