package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
)

type teamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) team.TeamRepository {
	return &teamRepository{store: store}
}

func (r *teamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.companies[t.CompanyID]; !ok {
		return team.Team{}, company.ErrCompanyNotFound
	}

	t.ID = d.nextID()
	t.CreatedAt = r.store.timestamp()
	d.teams[t.ID] = t
	return t, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (team.Team, error) {
	defer r.store.acquire(ctx)()

	t, ok := r.store.data.teams[id]
	if !ok {
		return team.Team{}, team.ErrTeamNotFound
	}
	return t, nil
}

func (r *teamRepository) ListByCompany(ctx context.Context, companyID string) ([]team.Team, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	var out []team.Team
	for _, t := range d.teams {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return d.order[out[i].ID] < d.order[out[j].ID] })
	return out, nil
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, employeeID string) (bool, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.teams[teamID]; !ok {
		return false, team.ErrTeamNotFound
	}
	if _, ok := d.employees[employeeID]; !ok {
		return false, employee.ErrEmployeeNotFound
	}

	key := pairKey{teamID, employeeID}
	if _, ok := d.members[key]; ok {
		return false, nil
	}
	d.seq++
	d.members[key] = membership{addedAt: r.store.timestamp(), seq: d.seq}
	return true, nil
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, employeeID string) error {
	defer r.store.acquire(ctx)()

	delete(r.store.data.members, pairKey{teamID, employeeID})
	return nil
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	type row struct {
		member team.Member
		seq    int64
	}
	var rows []row
	for key, m := range d.members {
		if key.a != teamID {
			continue
		}
		e := d.employees[key.b]
		rows = append(rows, row{
			member: team.Member{
				TeamID:     teamID,
				EmployeeID: e.ID,
				Name:       e.Name,
				Email:      e.Email,
				JobTitle:   e.JobTitle,
				AddedAt:    m.addedAt,
			},
			seq: m.seq,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]team.Member, 0, len(rows))
	for _, x := range rows {
		out = append(out, x.member)
	}
	return out, nil
}

func (r *teamRepository) IsMember(ctx context.Context, teamID, employeeID string) (bool, error) {
	defer r.store.acquire(ctx)()

	_, ok := r.store.data.members[pairKey{teamID, employeeID}]
	return ok, nil
}

func (d *state) deleteTeam(id string) {
	delete(d.teams, id)
	for key := range d.members {
		if key.a == id {
			delete(d.members, key)
		}
	}
	for docID, doc := range d.documents {
		if doc.TeamID != nil && *doc.TeamID == id {
			d.deleteDocument(docID)
		}
	}
	for chatID, c := range d.chats {
		if c.TeamID != nil && *c.TeamID == id {
			d.deleteChat(chatID)
		}
	}
}
