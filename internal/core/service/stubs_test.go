package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/employee-service/internal/core/domain"
	"github.com/99minutos/employee-service/internal/infrastructure/auth"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubEmployeeRepo struct {
	byID      map[int64]*domain.Employee
	createErr error // if set, Create returns this error
	listErr   error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byID: make(map[int64]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.ID == e.ID || existing.Email == e.Email || existing.Username == e.Username {
			return domain.ErrDuplicateUser
		}
	}
	r.byID[e.ID] = cloneEmployee(e)
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, e := range r.byID {
		if e.Email == email {
			return cloneEmployee(e), nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, e := range r.byID {
		if e.Email == email || e.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEmployeeRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, e := range r.byID {
		if e.Role == role {
			n++
		}
	}
	return n, nil
}

// List returns employees ordered by id, mirroring insertion order in the store.
func (r *stubEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, cloneEmployee(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	existing, ok := r.byID[e.ID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	for id, other := range r.byID {
		if id != e.ID && (other.Email == e.Email || other.Username == e.Username) {
			return domain.ErrDuplicateUser
		}
	}
	existing.Username = e.Username
	existing.Designation = e.Designation
	existing.Email = e.Email
	existing.PasswordHash = e.PasswordHash
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

// stubSequence mimics the store counter: the first id is 1000.
type stubSequence struct {
	seq int64
	err error
}

func (s *stubSequence) Next(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.seq++
	return domain.FirstEmployeeID - 1 + s.seq, nil
}

// stubClaim records claims held in memory.
type stubClaim struct {
	held              map[string]bool
	err               error
	released          int
	bootstrapHeld     bool
	bootstrapAcquired int
}

func newStubClaim() *stubClaim {
	return &stubClaim{held: make(map[string]bool)}
}

func (c *stubClaim) Acquire(_ context.Context, email, username string) (func(context.Context), error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.held["e:"+email] || c.held["u:"+username] {
		return nil, domain.ErrDuplicateUser
	}
	c.held["e:"+email] = true
	c.held["u:"+username] = true
	return func(context.Context) {
		delete(c.held, "e:"+email)
		delete(c.held, "u:"+username)
		c.released++
	}, nil
}

func (c *stubClaim) AcquireAdminBootstrap(context.Context) (func(context.Context), error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.bootstrapHeld {
		return nil, domain.ErrForbidden
	}
	c.bootstrapHeld = true
	c.bootstrapAcquired++
	return func(context.Context) { c.bootstrapHeld = false }, nil
}

var errStore = errors.New("store unavailable")

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testCodec() *auth.BcryptCodec {
	return auth.NewBcryptCodec(bcrypt.MinCost)
}

func testTokens() *auth.JWTService {
	svc, err := auth.NewJWTService("test-secret", time.Hour)
	if err != nil {
		panic(err)
	}
	return svc
}

type identityFixture struct {
	svc    *IdentityService
	repo   *stubEmployeeRepo
	seq    *stubSequence
	claims *stubClaim
	tokens *auth.JWTService
}

func newIdentityFixture() *identityFixture {
	f := &identityFixture{
		repo:   newStubEmployeeRepo(),
		seq:    &stubSequence{},
		claims: newStubClaim(),
		tokens: testTokens(),
	}
	f.svc = NewIdentityService(f.repo, f.seq, f.claims, testCodec(), f.tokens, discardLogger)
	return f
}
