package access

// Evaluate applies the rules in order: missing entities, admin-only actions,
// team-scoped actions, company-scoped actions, then message authorship.
func Evaluate(f Facts, action Action) Decision {
	if f.Missing != nil {
		return Deny(f.Missing)
	}

	isCompanyMember := f.ActorCompanyID != "" && f.ActorCompanyID == f.CompanyID
	teamBound := f.TeamID != ""

	switch action {
	case ActionCompanyDelete, ActionRoleAssign, ActionRoleList, ActionInviteIssue, ActionInviteList:
		return requireAdmin(f, isCompanyMember)

	case ActionChatCreate:
		if !teamBound {
			return requireAdmin(f, isCompanyMember)
		}
		return requireScope(f, isCompanyMember)

	case ActionTeamMembersManage:
		if !f.IsTeamMember {
			return Deny(ErrNotTeamMember)
		}
		return Allow()

	case ActionCompanyRead, ActionEmployeeList, ActionRoleRead, ActionTeamCreate, ActionTeamRead:
		if !isCompanyMember {
			return Deny(ErrNotCompanyMember)
		}
		return Allow()

	case ActionChatRead, ActionChatPost, ActionDocumentCreate, ActionDocumentRead, ActionDocumentEdit:
		return requireScope(f, isCompanyMember)

	case ActionMessageEdit:
		if d := requireScope(f, isCompanyMember); !d.Allowed {
			return d
		}
		if f.AuthorID != f.ActorID {
			return Deny(ErrNotMessageAuthor)
		}
		return Allow()

	case ActionMessageDelete:
		if d := requireScope(f, isCompanyMember); !d.Allowed {
			return d
		}
		if f.AuthorID != f.ActorID && !(f.IsAdmin && isCompanyMember) {
			return Deny(ErrNotMessageAuthor)
		}
		return Allow()
	}

	return Deny(ErrUnknownAction)
}

func requireAdmin(f Facts, isCompanyMember bool) Decision {
	if !f.IsAdmin || !isCompanyMember {
		return Deny(ErrAdminRequired)
	}
	return Allow()
}

// requireScope checks team membership for team-bound resources and company
// membership for company-wide ones.
func requireScope(f Facts, isCompanyMember bool) Decision {
	if f.TeamID != "" {
		if !f.IsTeamMember {
			return Deny(ErrNotTeamMember)
		}
		return Allow()
	}
	if !isCompanyMember {
		return Deny(ErrNotCompanyMember)
	}
	return Allow()
}
