package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
	"github.com/Dosada05/golf-admin/storage"
)

var testNow = time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)

func golfer(id int, first, last string, reg models.RegistrationStatus, pay models.PaymentStatus) models.Golfer {
	return models.Golfer{
		ID:                 id,
		TournamentID:       1,
		FirstName:          first,
		LastName:           last,
		Email:              first + "@example.com",
		RegistrationStatus: reg,
		PaymentStatus:      pay,
		PaymentType:        models.PaymentTypePayOnDay,
		CreatedAt:          testNow.Add(time.Duration(id) * time.Minute),
	}
}

// fakeGolferRepo keeps golfers in memory. failOn makes the named operation
// return the error without touching state.
type fakeGolferRepo struct {
	mu       sync.Mutex
	golfers  map[int]models.Golfer
	order    []int
	nextID   int
	failOn   map[string]error
	calls    map[string]int
	lastReg  *models.RegistrationInput
	lastPaid *models.PaymentRecord
}

func newFakeGolferRepo(golfers ...models.Golfer) *fakeGolferRepo {
	r := &fakeGolferRepo{
		golfers: make(map[int]models.Golfer),
		nextID:  100,
		failOn:  make(map[string]error),
		calls:   make(map[string]int),
	}
	for _, g := range golfers {
		r.golfers[g.ID] = g
		r.order = append(r.order, g.ID)
	}
	return r
}

func (r *fakeGolferRepo) count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *fakeGolferRepo) mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for op, c := range r.calls {
		if op != "list" && op != "get" {
			n += c
		}
	}
	return n
}

func (r *fakeGolferRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Golfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["list"]++
	if err := r.failOn["list"]; err != nil {
		return nil, err
	}
	var out []models.Golfer
	for _, id := range r.order {
		if g, ok := r.golfers[id]; ok && g.TournamentID == tournamentID {
			out = append(out, g.Clone())
		}
	}
	return out, nil
}

func (r *fakeGolferRepo) GetByID(_ context.Context, id int) (*models.Golfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["get"]++
	g, ok := r.golfers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &g, nil
}

func (r *fakeGolferRepo) mutate(op string, id int, fn func(g *models.Golfer)) (*models.Golfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[op]++
	if err := r.failOn[op]; err != nil {
		return nil, err
	}
	g, ok := r.golfers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	fn(&g)
	r.golfers[id] = g
	c := g.Clone()
	return &c, nil
}

func (r *fakeGolferRepo) Register(_ context.Context, tournamentID int, input models.RegistrationInput) (*models.Golfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["register"]++
	if err := r.failOn["register"]; err != nil {
		return nil, err
	}
	r.lastReg = &input
	r.nextID++
	g := models.Golfer{
		ID:                 r.nextID,
		TournamentID:       tournamentID,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Email:              input.Email,
		Company:            input.Company,
		RegistrationStatus: models.RegistrationConfirmed,
		PaymentStatus:      input.PaymentStatus,
		PaymentType:        input.PaymentType,
		AmountPaidCents:    input.AmountPaidCents,
		IsEmployee:         input.IsEmployee,
		EmployeeNumber:     input.EmployeeNumber,
	}
	r.golfers[g.ID] = g
	r.order = append(r.order, g.ID)
	return &g, nil
}

func (r *fakeGolferRepo) Update(_ context.Context, id int, input models.GolferUpdate) (*models.Golfer, error) {
	return r.mutate("update", id, func(g *models.Golfer) {
		if input.FirstName != nil {
			g.FirstName = *input.FirstName
		}
		if input.Email != nil {
			g.Email = *input.Email
		}
	})
}

func (r *fakeGolferRepo) Cancel(_ context.Context, id int) (*models.Golfer, error) {
	return r.mutate("cancel", id, func(g *models.Golfer) { g.RegistrationStatus = models.RegistrationCancelled })
}

func (r *fakeGolferRepo) Refund(_ context.Context, id int) (*models.Golfer, error) {
	return r.mutate("refund", id, func(g *models.Golfer) { g.PaymentStatus = models.PaymentRefunded })
}

func (r *fakeGolferRepo) Promote(_ context.Context, id int) (*models.Golfer, error) {
	return r.mutate("promote", id, func(g *models.Golfer) { g.RegistrationStatus = models.RegistrationConfirmed })
}

func (r *fakeGolferRepo) Demote(_ context.Context, id int) (*models.Golfer, error) {
	return r.mutate("demote", id, func(g *models.Golfer) { g.RegistrationStatus = models.RegistrationWaitlist })
}

func (r *fakeGolferRepo) RecordPayment(_ context.Context, id int, payment models.PaymentRecord) (*models.Golfer, error) {
	r.mu.Lock()
	r.lastPaid = &payment
	r.mu.Unlock()
	return r.mutate("pay", id, func(g *models.Golfer) {
		g.PaymentStatus = models.PaymentPaid
		g.PaymentMethod = models.StringPtr(payment.Method)
	})
}

func (r *fakeGolferRepo) SetCheckedIn(_ context.Context, id int, checkedIn bool) (*models.Golfer, error) {
	return r.mutate("checkin", id, func(g *models.Golfer) {
		g.CheckedIn = checkedIn
		g.CheckedInAt = nil
		if checkedIn {
			t := testNow
			g.CheckedInAt = &t
		}
	})
}

func (r *fakeGolferRepo) SetEmployee(_ context.Context, id int, isEmployee bool) (*models.Golfer, error) {
	return r.mutate("employee", id, func(g *models.Golfer) { g.IsEmployee = isEmployee })
}

func (r *fakeGolferRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["delete"]++
	if err := r.failOn["delete"]; err != nil {
		return err
	}
	if _, ok := r.golfers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.golfers, id)
	return nil
}

// fakeStatsRepo derives stats from the golfer repo the way the server would.
type fakeStatsRepo struct {
	golfers *fakeGolferRepo
	err     error
	calls   int
	mu      sync.Mutex
}

func (r *fakeStatsRepo) Get(ctx context.Context, tournamentID int) (*models.Stats, error) {
	r.mu.Lock()
	r.calls++
	err := r.err
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	golfers, err := r.golfers.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s := &models.Stats{TotalRegistered: len(golfers)}
	for _, g := range golfers {
		switch g.RegistrationStatus {
		case models.RegistrationConfirmed:
			s.Confirmed++
		case models.RegistrationWaitlist:
			s.Waitlisted++
		case models.RegistrationCancelled:
			s.Cancelled++
		}
		if g.PaymentStatus == models.PaymentPaid {
			s.Paid++
		}
	}
	return s, nil
}

type fakeGroupRepo struct {
	mu      sync.Mutex
	golfers *fakeGolferRepo
	groups  []models.Group
	nextID  int
	calls   int
	failOn  map[string]error
	log     []string
}

func newFakeGroupRepo(golfers *fakeGolferRepo, groups ...models.Group) *fakeGroupRepo {
	return &fakeGroupRepo{golfers: golfers, groups: groups, nextID: 50, failOn: make(map[string]error)}
}

func (r *fakeGroupRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["list"]; err != nil {
		return nil, err
	}
	out := make([]models.Group, 0, len(r.groups))
	for _, g := range r.groups {
		if g.TournamentID == tournamentID {
			out = append(out, g.Clone())
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) Create(_ context.Context, tournamentID int, input models.CreateGroupInput) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.nextID++
	g := models.Group{ID: r.nextID, TournamentID: tournamentID, GroupNumber: len(r.groups) + 1, HoleNumber: input.HoleNumber}
	r.groups = append(r.groups, g)
	return &g, nil
}

func (r *fakeGroupRepo) Delete(_ context.Context, groupID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i, g := range r.groups {
		if g.ID == groupID {
			r.groups = append(r.groups[:i], r.groups[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeGroupRepo) AddMember(_ context.Context, groupID, golferID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.log = append(r.log, "add")
	if err := r.failOn["add"]; err != nil {
		return err
	}
	g, err := r.golfers.GetByID(context.Background(), golferID)
	if err != nil {
		return err
	}
	for i := range r.groups {
		if r.groups[i].ID == groupID {
			r.groups[i].Members = append(r.groups[i].Members, *g)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeGroupRepo) RemoveMember(_ context.Context, groupID, golferID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.log = append(r.log, "remove")
	for i := range r.groups {
		if r.groups[i].ID != groupID {
			continue
		}
		members := r.groups[i].Members[:0]
		for _, m := range r.groups[i].Members {
			if m.ID != golferID {
				members = append(members, m)
			}
		}
		r.groups[i].Members = members
		return nil
	}
	return repositories.ErrNotFound
}

func (r *fakeGroupRepo) mutationCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[int]models.Tournament
	updates     int
}

func newFakeTournamentRepo(ts ...models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[int]models.Tournament)}
	for _, t := range ts {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *fakeTournamentRepo) List(context.Context) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Tournament
	for _, t := range r.tournaments {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, id int, input models.UpdateTournamentInput) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.TeamSize != nil {
		t.TeamSize = *input.TeamSize
	}
	if input.AllowStripe != nil {
		t.AllowStripe = *input.AllowStripe
	}
	if input.AllowPayOnDay != nil {
		t.AllowPayOnDay = *input.AllowPayOnDay
	}
	r.tournaments[id] = t
	return &t, nil
}

func openTournament() models.Tournament {
	return models.Tournament{
		ID:               1,
		Name:             "Spring Scramble",
		TeamSize:         4,
		Capacity:         72,
		EntryFeeCents:    15000,
		EmployeeFeeCents: 5000,
		AllowStripe:      true,
		AllowPayOnDay:    true,
		RegistrationOpen: true,
	}
}

type fakeEmployeeRepo struct {
	numbers []models.EmployeeNumber
	nextID  int
}

func (r *fakeEmployeeRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.EmployeeNumber, error) {
	var out []models.EmployeeNumber
	for _, n := range r.numbers {
		if n.TournamentID == tournamentID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, tournamentID int, number string) (*models.EmployeeNumber, error) {
	r.nextID++
	n := models.EmployeeNumber{ID: r.nextID, TournamentID: tournamentID, Number: number}
	r.numbers = append(r.numbers, n)
	return &n, nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id int) error {
	for i, n := range r.numbers {
		if n.ID == id {
			r.numbers = append(r.numbers[:i], r.numbers[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeCheckout struct {
	sessions map[string]*CheckoutSession
	created  []CheckoutRequest
	err      error
}

func newFakeCheckout() *fakeCheckout {
	return &fakeCheckout{sessions: make(map[string]*CheckoutSession)}
}

func (c *fakeCheckout) Create(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.created = append(c.created, req)
	s := &CheckoutSession{
		ID:          "cs_test_" + req.Reference,
		URL:         "https://checkout.example.com/pay/" + req.Reference,
		AmountCents: req.AmountCents,
		Reference:   req.Reference,
	}
	c.sessions[s.ID] = s
	return s, nil
}

func (c *fakeCheckout) Get(_ context.Context, id string) (*CheckoutSession, error) {
	s, ok := c.sessions[id]
	if !ok {
		return nil, ErrPaymentNotCompleted
	}
	cp := *s
	return &cp, nil
}

type published struct {
	TournamentID int
	Type         string
	Payload      interface{}
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []published
}

func (p *recordingPublisher) Publish(tournamentID int, msgType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, published{tournamentID, msgType, payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.Type
	}
	return out
}

type fakeUploader struct {
	keys      []string
	deleted   []string
	err       error
	deleteErr error
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, body io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	return &storage.UploadResult{Key: key, Location: "https://files.example.com/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	if u.deleteErr != nil {
		return u.deleteErr
	}
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string { return "https://files.example.com/" + key }
