// Package memory is an in-process implementation of every repository. It
// backs the service tests and STORE=memory runs; its transactions are
// serialized and roll back by restoring a snapshot.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type pairKey struct {
	a, b string
}

type membership struct {
	addedAt time.Time
	seq     int64
}

type state struct {
	seq       int64
	order     map[string]int64
	employees map[string]employee.Employee
	companies map[string]company.Company
	roles     map[pairKey]role.Assignment
	teams     map[string]team.Team
	members   map[pairKey]membership
	invites   map[string]invite.InviteCode
	documents map[string]document.Document
	versions  map[string]document.Version
	chats     map[string]chat.Chat
	messages  map[string]chat.Message
}

func newState() *state {
	return &state{
		order:     map[string]int64{},
		employees: map[string]employee.Employee{},
		companies: map[string]company.Company{},
		roles:     map[pairKey]role.Assignment{},
		teams:     map[string]team.Team{},
		members:   map[pairKey]membership{},
		invites:   map[string]invite.InviteCode{},
		documents: map[string]document.Document{},
		versions:  map[string]document.Version{},
		chats:     map[string]chat.Chat{},
		messages:  map[string]chat.Message{},
	}
}

// clone copies every map. Stored values are replaced, never mutated in
// place, so copying the maps is enough for a snapshot.
func (s *state) clone() *state {
	return &state{
		seq:       s.seq,
		order:     maps.Clone(s.order),
		employees: maps.Clone(s.employees),
		companies: maps.Clone(s.companies),
		roles:     maps.Clone(s.roles),
		teams:     maps.Clone(s.teams),
		members:   maps.Clone(s.members),
		invites:   maps.Clone(s.invites),
		documents: maps.Clone(s.documents),
		versions:  maps.Clone(s.versions),
		chats:     maps.Clone(s.chats),
		messages:  maps.Clone(s.messages),
	}
}

// nextID allocates an id and remembers its insertion order.
func (s *state) nextID() string {
	id := uuid.NewString()
	s.seq++
	s.order[id] = s.seq
	return id
}

type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
	}
}

// SetClock replaces the time source used for generated timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// acquire locks the store unless ctx already runs inside one of its
// transactions, which hold the lock for their whole duration.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

type transactor struct {
	store *Store
}

func NewTransactor(store *Store) database.Transactor {
	return &transactor{store: store}
}

// WithinTransaction implements database.Transactor. Nested calls join the
// outer transaction.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s := t.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
	}
	return err
}
