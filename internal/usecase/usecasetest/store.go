// Package usecasetest содержит in-memory реализации репозиториев и внешних зависимостей
// для тестов сценариев бронирования
package usecasetest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/booking"
	commitmentRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/commitment"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/dependents"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

var (
	// ErrInjected возвращается методами, для которых задан отказ через Fail
	ErrInjected = errors.New("usecasetest: injected failure")
	// ErrForeignKey повторяет отказ Postgres при удалении проекта со ссылками NOT NULL
	ErrForeignKey = errors.New("usecasetest: foreign key violation")
)

// Store хранит все записи в памяти и умеет откатываться к снимку
type Store struct {
	mu sync.Mutex

	nextID   int64
	sequence int64

	projects   map[int64]domain.Project
	bookings   map[int64]domain.Booking
	sessions   map[int64]domain.Session
	blocks     map[int64]domain.Commitment
	windows    map[time.Weekday]domain.AvailabilityWindow
	services   map[int64]domain.Service
	dependents map[dependents.Target]map[int64]int
	// orphaned считает зависимые записи с обнуленным project_id (ON DELETE SET NULL)
	orphaned   map[dependents.Target]int

	failures map[string]error
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		nextID:     100,
		sequence:   1000,
		projects:   make(map[int64]domain.Project),
		bookings:   make(map[int64]domain.Booking),
		sessions:   make(map[int64]domain.Session),
		blocks:     make(map[int64]domain.Commitment),
		windows:    make(map[time.Weekday]domain.AvailabilityWindow),
		services:   make(map[int64]domain.Service),
		dependents: make(map[dependents.Target]map[int64]int),
		orphaned:   make(map[dependents.Target]int),
		failures:   make(map[string]error),
	}
}

// Fail задает ошибку для операции вида "projects.Create" или "sequence.Next".
// nil err использует ErrInjected
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	return s.failures[op]
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddService добавляет тип сессии
func (s *Store) AddService(service domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[service.ID] = service
}

// SetWindow задает рабочее окно дня недели
func (s *Store) SetWindow(window domain.AvailabilityWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[window.DayOfWeek] = window
}

// AddBlock добавляет явную блокировку интервала
func (s *Store) AddBlock(interval domain.Interval) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.blocks[id] = domain.Commitment{
		ID:       id,
		Kind:     domain.CommitmentBlock,
		Interval: interval,
		Status:   domain.CommitmentConfirmed,
	}
	return id
}

// AddDependent добавляет n зависимых записей проекта
func (s *Store) AddDependent(target dependents.Target, projectID int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dependents[target] == nil {
		s.dependents[target] = make(map[int64]int)
	}
	s.dependents[target][projectID] += n
}

// DependentCount возвращает число зависимых записей проекта
func (s *Store) DependentCount(target dependents.Target, projectID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dependents[target][projectID]
}

// OrphanedCount возвращает число записей target, потерявших ссылку на проект
func (s *Store) OrphanedCount(target dependents.Target) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orphaned[target]
}

// Counts возвращает число проектов, бронирований и сессий
func (s *Store) Counts() (projects, bookings, sessions int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects), len(s.bookings), len(s.sessions)
}

// ProjectByID возвращает копию проекта
func (s *Store) ProjectByID(id int64) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	return p, ok
}

// BookingsOf возвращает бронирования проекта
func (s *Store) BookingsOf(projectID int64) []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.ProjectID == projectID {
			out = append(out, b)
		}
	}
	return out
}

// SessionsOf возвращает сессии проекта
func (s *Store) SessionsOf(projectID int64) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Session
	for _, sess := range s.sessions {
		if sess.ProjectID == projectID {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type snapshot struct {
	nextID     int64
	projects   map[int64]domain.Project
	bookings   map[int64]domain.Booking
	sessions   map[int64]domain.Session
	blocks     map[int64]domain.Commitment
	windows    map[time.Weekday]domain.AvailabilityWindow
	dependents map[dependents.Target]map[int64]int
	orphaned   map[dependents.Target]int
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	deps := make(map[dependents.Target]map[int64]int, len(s.dependents))
	for target, byProject := range s.dependents {
		deps[target] = copyMap(byProject)
	}

	return snapshot{
		nextID:     s.nextID,
		projects:   copyMap(s.projects),
		bookings:   copyMap(s.bookings),
		sessions:   copyMap(s.sessions),
		blocks:     copyMap(s.blocks),
		windows:    copyMap(s.windows),
		dependents: deps,
		orphaned:   copyMap(s.orphaned),
	}
}

// restore не трогает последовательность: nextval не откатывается
func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.projects = snap.projects
	s.bookings = snap.bookings
	s.sessions = snap.sessions
	s.blocks = snap.blocks
	s.windows = snap.windows
	s.dependents = snap.dependents
	s.orphaned = snap.orphaned
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Projects репозиторий проектов
func (s *Store) Projects() *Projects { return &Projects{s: s} }

// Bookings репозиторий бронирований
func (s *Store) Bookings() *Bookings { return &Bookings{s: s} }

// Sessions репозиторий сессий
func (s *Store) Sessions() *Sessions { return &Sessions{s: s} }

// Commitments репозиторий занятости
func (s *Store) Commitments() *Commitments { return &Commitments{s: s} }

// Availability репозиторий рабочих часов
func (s *Store) Availability() *Availability { return &Availability{s: s} }

// Services репозиторий типов сессий
func (s *Store) Services() *Services { return &Services{s: s} }

// Dependents репозиторий зависимых записей
func (s *Store) Dependents() *Dependents { return &Dependents{s: s} }

// Sequence аллокатор номеров проектов
func (s *Store) Sequence() *Sequence { return &Sequence{s: s} }

// Projects in-memory репозиторий проектов
type Projects struct{ s *Store }

func (r *Projects) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("projects.Create"); err != nil {
		return nil, err
	}
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.s.projects[p.ID] = *p
	return p, nil
}

func (r *Projects) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("projects.GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (r *Projects) UpdateSchedule(_ context.Context, id int64, shootDate time.Time, shootTime types.TimeString, state domain.SchedulingState) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("projects.UpdateSchedule"); err != nil {
		return err
	}
	p, ok := r.s.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.ShootDate = shootDate
	p.ShootTime = shootTime
	p.SchedulingState = state
	r.s.projects[id] = p
	return nil
}

func (r *Projects) UpdateSchedulingState(_ context.Context, id int64, state domain.SchedulingState) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("projects.UpdateSchedulingState"); err != nil {
		return err
	}
	p, ok := r.s.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.SchedulingState = state
	r.s.projects[id] = p
	return nil
}

func (r *Projects) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("projects.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	// bookings и sessions ссылаются на проект без ON DELETE
	for _, b := range r.s.bookings {
		if b.ProjectID == id {
			return ErrForeignKey
		}
	}
	for _, sess := range r.s.sessions {
		if sess.ProjectID == id {
			return ErrForeignKey
		}
	}
	for target, byProject := range r.s.dependents {
		if n := byProject[id]; n > 0 {
			r.s.orphaned[target] += n
		}
		delete(byProject, id)
	}
	delete(r.s.projects, id)
	return nil
}

// Bookings in-memory репозиторий бронирований
type Bookings struct{ s *Store }

func (r *Bookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.Create"); err != nil {
		return nil, err
	}
	b.ID = r.s.id()
	r.s.bookings[b.ID] = *b
	return b, nil
}

func (r *Bookings) GetByProjectID(_ context.Context, projectID int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.ProjectID == projectID {
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *Bookings) SetExternalEventID(_ context.Context, id int64, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.SetExternalEventID"); err != nil {
		return err
	}
	b, ok := r.s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.ExternalCalendarEventID = &eventID
	r.s.bookings[id] = b
	return nil
}

func (r *Bookings) DeleteByProjectID(_ context.Context, projectID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.DeleteByProjectID"); err != nil {
		return 0, err
	}
	var n int64
	for id, b := range r.s.bookings {
		if b.ProjectID == projectID {
			delete(r.s.bookings, id)
			n++
		}
	}
	return n, nil
}

// Sessions in-memory репозиторий сессий
type Sessions struct{ s *Store }

func (r *Sessions) Create(_ context.Context, sess *domain.Session) (*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sessions.Create"); err != nil {
		return nil, err
	}
	sess.ID = r.s.id()
	r.s.sessions[sess.ID] = *sess
	return sess, nil
}

func (r *Sessions) ListByProjectID(_ context.Context, projectID int64) ([]*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sessions.ListByProjectID"); err != nil {
		return nil, err
	}
	out := make([]*domain.Session, 0)
	for _, sess := range r.s.sessions {
		if sess.ProjectID == projectID {
			sess := sess
			out = append(out, &sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDatetime.Before(out[j].StartDatetime) })
	return out, nil
}

func (r *Sessions) SetExternalEventID(_ context.Context, id int64, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sessions.SetExternalEventID"); err != nil {
		return err
	}
	sess, ok := r.s.sessions[id]
	if !ok {
		return errors.New("session not found")
	}
	sess.ExternalCalendarEventID = &eventID
	r.s.sessions[id] = sess
	return nil
}

func (r *Sessions) DeleteByProjectID(_ context.Context, projectID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sessions.DeleteByProjectID"); err != nil {
		return 0, err
	}
	var n int64
	for id, sess := range r.s.sessions {
		if sess.ProjectID == projectID {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Commitments in-memory репозиторий занятости
type Commitments struct{ s *Store }

func (r *Commitments) ListConfirmed(_ context.Context, from, to time.Time) ([]domain.Commitment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("commitments.ListConfirmed"); err != nil {
		return nil, err
	}

	window := domain.Interval{Start: from, End: to}
	out := make([]domain.Commitment, 0)
	for _, sess := range r.s.sessions {
		if sess.Status != domain.SessionStatusConfirmed || !sess.Interval().Overlaps(window) {
			continue
		}
		projectID := sess.ProjectID
		out = append(out, domain.Commitment{
			ID:        sess.ID,
			Kind:      domain.CommitmentSession,
			ProjectID: &projectID,
			Interval:  sess.Interval(),
			Status:    domain.CommitmentConfirmed,
		})
	}
	for _, block := range r.s.blocks {
		if block.Interval.Overlaps(window) {
			out = append(out, block)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *Commitments) ListOverlapping(ctx context.Context, interval domain.Interval) ([]domain.Commitment, error) {
	return r.ListConfirmed(ctx, interval.Start, interval.End)
}

func (r *Commitments) CreateBlock(_ context.Context, block *domain.Commitment) (*domain.Commitment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("commitments.CreateBlock"); err != nil {
		return nil, err
	}
	block.ID = r.s.id()
	block.Kind = domain.CommitmentBlock
	block.Status = domain.CommitmentConfirmed
	r.s.blocks[block.ID] = *block
	return block, nil
}

func (r *Commitments) DeleteBlock(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blocks[id]; !ok {
		return commitmentRepo.ErrBlockNotFound
	}
	delete(r.s.blocks, id)
	return nil
}

// Availability in-memory репозиторий рабочих часов
type Availability struct{ s *Store }

func (r *Availability) GetWindow(_ context.Context, day time.Weekday) (*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("availability.GetWindow"); err != nil {
		return nil, err
	}
	w, ok := r.s.windows[day]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *Availability) ListAll(_ context.Context) ([]*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.AvailabilityWindow, 0, len(r.s.windows))
	for _, w := range r.s.windows {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (r *Availability) Upsert(_ context.Context, window *domain.AvailabilityWindow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("availability.Upsert"); err != nil {
		return err
	}
	r.s.windows[window.DayOfWeek] = *window
	return nil
}

// Services in-memory репозиторий типов сессий
type Services struct{ s *Store }

func (r *Services) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("services.GetByID"); err != nil {
		return nil, err
	}
	svc, ok := r.s.services[id]
	if !ok {
		return nil, sessiontype.ErrServiceNotFound
	}
	return &svc, nil
}

// Dependents in-memory репозиторий зависимых записей
type Dependents struct{ s *Store }

func (r *Dependents) DeleteByProject(_ context.Context, target dependents.Target, projectID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("dependents." + string(target)); err != nil {
		return 0, err
	}
	n := r.s.dependents[target][projectID]
	delete(r.s.dependents[target], projectID)
	return int64(n), nil
}

// Sequence in-memory аллокатор номеров
type Sequence struct{ s *Store }

func (r *Sequence) Next(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sequence.Next"); err != nil {
		return 0, err
	}
	r.s.sequence++
	return r.s.sequence, nil
}
