package services_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

// memStore is an in-memory TxManager. A failed unit of work restores the
// state captured when it began.
type memStore struct {
	mu        sync.Mutex
	users     []entities.User
	clinics   []entities.Clinic
	services  map[int64][]string
	schedules map[int64]map[string]string
	reviews   []entities.Review
	nextID    int64
	now       time.Time
	txCount   int

	// failScheduleInsert makes schedule inserts fail, to exercise rollback
	failScheduleInsert bool
}

func newMemStore() *memStore {
	return &memStore{
		services:  make(map[int64][]string),
		schedules: make(map[int64]map[string]string),
		now:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

type memSnapshot struct {
	users     []entities.User
	clinics   []entities.Clinic
	services  map[int64][]string
	schedules map[int64]map[string]string
	reviews   []entities.Review
	nextID    int64
}

func (m *memStore) snapshot() memSnapshot {
	services := make(map[int64][]string, len(m.services))
	for k, v := range m.services {
		services[k] = append([]string(nil), v...)
	}
	schedules := make(map[int64]map[string]string, len(m.schedules))
	for k, v := range m.schedules {
		copied := make(map[string]string, len(v))
		for day, hours := range v {
			copied[day] = hours
		}
		schedules[k] = copied
	}
	return memSnapshot{
		users:     append([]entities.User(nil), m.users...),
		clinics:   append([]entities.Clinic(nil), m.clinics...),
		services:  services,
		schedules: schedules,
		reviews:   append([]entities.Review(nil), m.reviews...),
		nextID:    m.nextID,
	}
}

func (m *memStore) restore(s memSnapshot) {
	m.users = s.users
	m.clinics = s.clinics
	m.services = s.services
	m.schedules = s.schedules
	m.reviews = s.reviews
	m.nextID = s.nextID
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx repositories.Tx) error) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCount++

	before := m.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.restore(before)
			panic(p)
		}
		if err != nil {
			m.restore(before)
		}
	}()
	return fn(memTx{m})
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// seedClinic inserts a clinic with services, schedule and ratings outside any transaction
func (m *memStore) seedClinic(name, address string, services []string, schedule map[string]string, ratings ...int) int64 {
	id := m.id()
	m.clinics = append(m.clinics, entities.Clinic{
		ID: id, Name: name, Address: address, ImageURL: "img.png",
		Phone: "555", Email: "info@clinic.test", Description: "desc",
	})
	if len(services) > 0 {
		m.services[id] = services
	}
	if len(schedule) > 0 {
		m.schedules[id] = schedule
	}
	for i, r := range ratings {
		m.reviews = append(m.reviews, entities.Review{
			ID: m.id(), ClinicID: id, UserID: 1, Rating: r, Text: "seed",
			CreatedAt: m.now.Add(time.Duration(i) * time.Hour),
		})
	}
	return id
}

func (m *memStore) seedUser(user entities.User) int64 {
	user.ID = m.id()
	m.users = append(m.users, user)
	return user.ID
}

func (m *memStore) clinic(id int64) *entities.Clinic {
	for i := range m.clinics {
		if m.clinics[i].ID == id {
			return &m.clinics[i]
		}
	}
	return nil
}

type memTx struct{ m *memStore }

func (t memTx) Users() repositories.UserRepository { return memUsers(t) }
func (t memTx) Clinics() repositories.ClinicRepository { return memClinics(t) }
func (t memTx) Services() repositories.ClinicServiceRepository { return memServices(t) }
func (t memTx) Schedules() repositories.ClinicScheduleRepository { return memSchedules(t) }
func (t memTx) Reviews() repositories.ReviewRepository { return memReviews(t) }

type memUsers memTx

func (r memUsers) Create(_ context.Context, user *entities.User) error {
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return apperrors.NewConflictError("a user with this email already exists")
		}
	}
	user.ID = r.m.id()
	user.IsAdmin = false
	r.m.users = append(r.m.users, *user)
	return nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) FullName(_ context.Context, id int64) (string, error) {
	for _, u := range r.m.users {
		if u.ID == id {
			return u.FullName, nil
		}
	}
	return "", apperrors.NewNotFoundError("user not found")
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			r.m.users[i].PasswordHash = hash
		}
	}
	return nil
}

func (r memUsers) SetAdmin(_ context.Context, email string, isAdmin bool) (int64, error) {
	var n int64
	for i := range r.m.users {
		if r.m.users[i].Email == email {
			r.m.users[i].IsAdmin = isAdmin
			n++
		}
	}
	return n, nil
}

type memClinics memTx

func (r memClinics) Create(_ context.Context, clinic *entities.Clinic) error {
	clinic.ID = r.m.id()
	r.m.clinics = append(r.m.clinics, *clinic)
	return nil
}

func (r memClinics) Exists(_ context.Context, id int64) (bool, error) {
	return r.m.clinic(id) != nil, nil
}

func (r memClinics) Update(_ context.Context, id int64, patch entities.ClinicPatch) error {
	c := r.m.clinic(id)
	if c == nil {
		return nil
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&c.Name, patch.Name)
	apply(&c.ImageURL, patch.ImageURL)
	apply(&c.Address, patch.Address)
	apply(&c.Phone, patch.Phone)
	apply(&c.Email, patch.Email)
	apply(&c.Website, patch.Website)
	apply(&c.Description, patch.Description)
	return nil
}

func (r memClinics) Delete(_ context.Context, id int64) (int64, error) {
	for i, c := range r.m.clinics {
		if c.ID == id {
			r.m.clinics = append(r.m.clinics[:i], r.m.clinics[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r memClinics) ListBasic(_ context.Context) ([]entities.ClinicBasic, error) {
	out := []entities.ClinicBasic{}
	for _, c := range r.m.clinics {
		out = append(out, entities.ClinicBasic{ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone, Email: c.Email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memClinics) summary(c entities.Clinic) *entities.ClinicSummary {
	var sum, count int
	for _, rv := range r.m.reviews {
		if rv.ClinicID == c.ID {
			sum += rv.Rating
			count++
		}
	}
	avg := 0.0
	if count > 0 {
		avg = float64(sum) / float64(count)
	}
	return &entities.ClinicSummary{
		ID: c.ID, Name: c.Name, Image: c.ImageURL, Address: c.Address, Phone: c.Phone,
		Email: c.Email, Website: c.Website, Description: c.Description,
		Rating: entities.RoundRating(avg), ReviewCount: count,
		Services: []string{}, Schedule: map[string]string{},
	}
}

func (r memClinics) ListRated(_ context.Context, filter repositories.ClinicFilter) ([]*entities.ClinicSummary, error) {
	search := strings.ToLower(filter.Search)
	out := []*entities.ClinicSummary{}
	for _, c := range r.m.clinics {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Address), search) {
			continue
		}
		if filter.Service != "" && !contains(r.m.services[c.ID], filter.Service) {
			continue
		}
		out = append(out, r.summary(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	return out, nil
}

func (r memClinics) GetRated(_ context.Context, id int64) (*entities.ClinicSummary, error) {
	c := r.m.clinic(id)
	if c == nil {
		return nil, apperrors.NewNotFoundError("Clinic not found")
	}
	return r.summary(*c), nil
}

type memServices memTx

func (r memServices) ListByClinics(_ context.Context, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, id := range ids {
		if list, ok := r.m.services[id]; ok {
			out[id] = append([]string(nil), list...)
		}
	}
	return out, nil
}

func (r memServices) Insert(_ context.Context, clinicID int64, services []string) error {
	if len(services) == 0 {
		return nil
	}
	r.m.services[clinicID] = append(r.m.services[clinicID], services...)
	return nil
}

func (r memServices) DeleteByClinic(_ context.Context, clinicID int64) (int64, error) {
	n := int64(len(r.m.services[clinicID]))
	delete(r.m.services, clinicID)
	return n, nil
}

type memSchedules memTx

func (r memSchedules) ListByClinics(_ context.Context, ids []int64) (map[int64]map[string]string, error) {
	out := make(map[int64]map[string]string)
	for _, id := range ids {
		if schedule, ok := r.m.schedules[id]; ok {
			copied := make(map[string]string, len(schedule))
			for k, v := range schedule {
				copied[k] = v
			}
			out[id] = copied
		}
	}
	return out, nil
}

func (r memSchedules) Insert(_ context.Context, clinicID int64, schedule map[string]string) error {
	if r.m.failScheduleInsert {
		return apperrors.NewInternalError("failed to insert clinic schedule", errors.New("connection reset"))
	}
	if len(schedule) == 0 {
		return nil
	}
	if r.m.schedules[clinicID] == nil {
		r.m.schedules[clinicID] = make(map[string]string)
	}
	for k, v := range schedule {
		r.m.schedules[clinicID][k] = v
	}
	return nil
}

func (r memSchedules) DeleteByClinic(_ context.Context, clinicID int64) (int64, error) {
	n := int64(len(r.m.schedules[clinicID]))
	delete(r.m.schedules, clinicID)
	return n, nil
}

type memReviews memTx

func (r memReviews) Create(_ context.Context, review *entities.Review) error {
	review.ID = r.m.id()
	review.CreatedAt = r.m.now.Add(time.Duration(len(r.m.reviews)) * time.Hour)
	r.m.reviews = append(r.m.reviews, *review)
	return nil
}

func (r memReviews) ListByClinic(ctx context.Context, clinicID int64) ([]entities.ReviewView, error) {
	out := []entities.ReviewView{}
	for _, rv := range r.m.reviews {
		if rv.ClinicID != clinicID {
			continue
		}
		author, _ := memUsers(r).FullName(ctx, rv.UserID)
		out = append(out, entities.ReviewView{ID: rv.ID, Rating: rv.Rating, Text: rv.Text, Date: rv.CreatedAt, Author: author})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r memReviews) DeleteByClinic(_ context.Context, clinicID int64) (int64, error) {
	kept := r.m.reviews[:0]
	var n int64
	for _, rv := range r.m.reviews {
		if rv.ClinicID == clinicID {
			n++
			continue
		}
		kept = append(kept, rv)
	}
	r.m.reviews = kept
	return n, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// MockCacheProvider is a testify mock of providers.CacheProvider
type MockCacheProvider struct {
	mock.Mock
}

var _ providers.CacheProvider = (*MockCacheProvider)(nil)

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func userFixture() entities.User {
	return entities.User{Email: "ana@example.com", FullName: "Ana Diaz"}
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
