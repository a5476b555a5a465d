// Package repotest provides an in-memory Repository for service and handler tests.
// It reproduces the constraint behaviour of the Postgres schema: unique emails,
// genre references, stock bounds and one open rental per customer/movie pair.
package repotest

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"rental-store/internal/data/entity"
	"rental-store/internal/data/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store holds every table. Values are copied in and out so callers never share memory with it.
type Store struct {
	mu        sync.Mutex
	users     map[bson.ObjectID]entity.User
	genres    map[bson.ObjectID]entity.Genre
	customers map[bson.ObjectID]entity.Customer
	movies    map[bson.ObjectID]entity.Movie
	rentals   map[bson.ObjectID]entity.Rental

	// FailRentalMarkReturned makes the next MarkReturned call fail with this error.
	FailRentalMarkReturned error
	// FailMovieAdjustStock makes the next AdjustStock call fail with this error.
	FailMovieAdjustStock error
}

func NewStore() *Store {
	return &Store{
		users:     map[bson.ObjectID]entity.User{},
		genres:    map[bson.ObjectID]entity.Genre{},
		customers: map[bson.ObjectID]entity.Customer{},
		movies:    map[bson.ObjectID]entity.Movie{},
		rentals:   map[bson.ObjectID]entity.Rental{},
	}
}

// Repository returns a Repository whose WithTx runs through Store.WithTx.
func (s *Store) Repository() *repository.Repository {
	repo := &repository.Repository{
		User:     &userRepo{s},
		Genre:    &genreRepo{s},
		Customer: &customerRepo{s},
		Movie:    &movieRepo{s},
		Rental:   &rentalRepo{s},
	}
	return repo.UseTxFunc(s.WithTx)
}

// WithTx runs fn and restores every table to its prior state when fn fails.
// Transactions are not isolated from each other; tests run them one at a time.
func (s *Store) WithTx(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	saved := s.snapshot()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.users = saved.users
		s.genres = saved.genres
		s.customers = saved.customers
		s.movies = saved.movies
		s.rentals = saved.rentals
		s.mu.Unlock()
		return err
	}
	return nil
}

type tables struct {
	users     map[bson.ObjectID]entity.User
	genres    map[bson.ObjectID]entity.Genre
	customers map[bson.ObjectID]entity.Customer
	movies    map[bson.ObjectID]entity.Movie
	rentals   map[bson.ObjectID]entity.Rental
}

// snapshot must be called with the lock held. Stored values never share memory
// with callers, so copying the maps is enough.
func (s *Store) snapshot() tables {
	return tables{
		users:     maps.Clone(s.users),
		genres:    maps.Clone(s.genres),
		customers: maps.Clone(s.customers),
		movies:    maps.Clone(s.movies),
		rentals:   maps.Clone(s.rentals),
	}
}

// New is shorthand for a fresh store and its Repository.
func New() (*Store, *repository.Repository) {
	store := NewStore()
	return store, store.Repository()
}

// ==================== GENRES ====================

type genreRepo struct{ s *Store }

func (r *genreRepo) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*entity.Genre{}
	for _, g := range r.s.genres {
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *genreRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.genres[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *genreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.genres[genre.ID]; ok {
		return fmt.Errorf("create genre: %w", repository.ErrDuplicate)
	}
	r.s.genres[genre.ID] = *genre
	return nil
}

func (r *genreRepo) Update(ctx context.Context, genre *entity.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.genres[genre.ID]; !ok {
		return fmt.Errorf("update genre: %w", repository.ErrNotFound)
	}
	r.s.genres[genre.ID] = *genre
	return nil
}

func (r *genreRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.genres[id]; !ok {
		return fmt.Errorf("delete genre: %w", repository.ErrNotFound)
	}
	for _, m := range r.s.movies {
		if m.GenreID == id {
			return fmt.Errorf("delete genre: %w: movies_genre_id_fkey", repository.ErrForeignKey)
		}
	}
	delete(r.s.genres, id)
	return nil
}

// ==================== CUSTOMERS ====================

type customerRepo struct{ s *Store }

func (r *customerRepo) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*entity.Customer{}
	for _, c := range r.s.customers {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *customerRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.ID]; !ok {
		return fmt.Errorf("update customer: %w", repository.ErrNotFound)
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[id]; !ok {
		return fmt.Errorf("delete customer: %w", repository.ErrNotFound)
	}
	delete(r.s.customers, id)
	return nil
}

// ==================== MOVIES ====================

type movieRepo struct{ s *Store }

// withGenre must be called with the lock held.
func (r *movieRepo) withGenre(m entity.Movie) *entity.Movie {
	if g, ok := r.s.genres[m.GenreID]; ok {
		m.Genre = &g
	}
	return &m
}

func (r *movieRepo) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*entity.Movie{}
	for _, m := range r.s.movies {
		out = append(out, r.withGenre(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *movieRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return r.withGenre(m), nil
}

func (r *movieRepo) FindByIDForUpdate(ctx context.Context, id bson.ObjectID) (*entity.Movie, error) {
	return r.FindByID(ctx, id)
}

func (r *movieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.genres[movie.GenreID]; !ok {
		return fmt.Errorf("create movie: %w: movies_genre_id_fkey", repository.ErrForeignKey)
	}
	stored := *movie
	stored.Genre = nil
	r.s.movies[movie.ID] = stored
	return nil
}

func (r *movieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[movie.ID]; !ok {
		return fmt.Errorf("update movie: %w", repository.ErrNotFound)
	}
	if _, ok := r.s.genres[movie.GenreID]; !ok {
		return fmt.Errorf("update movie: %w: movies_genre_id_fkey", repository.ErrForeignKey)
	}
	stored := *movie
	stored.Genre = nil
	r.s.movies[movie.ID] = stored
	return nil
}

func (r *movieRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("delete movie: %w", repository.ErrNotFound)
	}
	delete(r.s.movies, id)
	return nil
}

func (r *movieRepo) AdjustStock(ctx context.Context, id bson.ObjectID, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.FailMovieAdjustStock; err != nil {
		r.s.FailMovieAdjustStock = nil
		return fmt.Errorf("adjust stock: %w", err)
	}

	m, ok := r.s.movies[id]
	if !ok {
		return fmt.Errorf("adjust stock: %w", repository.ErrNotFound)
	}
	next := m.NumberInStock + delta
	if next < 0 || next > 255 {
		return fmt.Errorf("adjust stock: %w: movies_number_in_stock_check", repository.ErrConstraint)
	}
	m.NumberInStock = next
	r.s.movies[id] = m
	return nil
}

// ==================== RENTALS ====================

type rentalRepo struct{ s *Store }

func copyRental(rental entity.Rental) *entity.Rental {
	if rental.DateReturned != nil {
		returned := *rental.DateReturned
		rental.DateReturned = &returned
	}
	if rental.RentalFee != nil {
		fee := *rental.RentalFee
		rental.RentalFee = &fee
	}
	return &rental
}

func (r *rentalRepo) FindAll(ctx context.Context) ([]*entity.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*entity.Rental{}
	for _, rental := range r.s.rentals {
		out = append(out, copyRental(rental))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateOut.After(out[j].DateOut) })
	return out, nil
}

func (r *rentalRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rental, ok := r.s.rentals[id]
	if !ok {
		return nil, nil
	}
	return copyRental(rental), nil
}

func (r *rentalRepo) Lookup(ctx context.Context, customerID, movieID bson.ObjectID) (*entity.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var best *entity.Rental
	for _, rental := range r.s.rentals {
		if rental.Customer.ID != customerID || rental.Movie.ID != movieID {
			continue
		}
		candidate := copyRental(rental)
		switch {
		case best == nil:
			best = candidate
		case candidate.IsOpen() != best.IsOpen():
			if candidate.IsOpen() {
				best = candidate
			}
		case candidate.DateOut.After(best.DateOut):
			best = candidate
		}
	}
	return best, nil
}

func (r *rentalRepo) Create(ctx context.Context, rental *entity.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rental.IsOpen() {
		for _, existing := range r.s.rentals {
			if existing.IsOpen() &&
				existing.Customer.ID == rental.Customer.ID &&
				existing.Movie.ID == rental.Movie.ID {
				return fmt.Errorf("create rental: %w: rentals_one_open_per_pair_idx", repository.ErrDuplicate)
			}
		}
	}
	r.s.rentals[rental.ID] = *copyRental(*rental)
	return nil
}

func (r *rentalRepo) MarkReturned(ctx context.Context, rental *entity.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.FailRentalMarkReturned; err != nil {
		r.s.FailRentalMarkReturned = nil
		return fmt.Errorf("mark rental returned: %w", err)
	}

	stored, ok := r.s.rentals[rental.ID]
	if !ok || !stored.IsOpen() {
		return fmt.Errorf("mark rental returned: %w", entity.ErrRentalAlreadyReturned)
	}
	stored.DateReturned = rental.DateReturned
	stored.RentalFee = rental.RentalFee
	r.s.rentals[rental.ID] = *copyRental(stored)
	return nil
}

// ==================== USERS ====================

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("create user: %w: users_email_key", repository.ErrDuplicate)
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// ==================== SEEDING ====================

// AddGenre stores genre as-is, bypassing services.
func (s *Store) AddGenre(genre entity.Genre) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genres[genre.ID] = genre
}

func (s *Store) AddCustomer(customer entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

func (s *Store) AddMovie(movie entity.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	movie.Genre = nil
	s.movies[movie.ID] = movie
}

func (s *Store) AddRental(rental entity.Rental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rentals[rental.ID] = *copyRental(rental)
}

func (s *Store) Genre(id bson.ObjectID) (entity.Genre, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.genres[id]
	return g, ok
}

func (s *Store) Movie(id bson.ObjectID) (entity.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	return m, ok
}

func (s *Store) Rental(id bson.ObjectID) (entity.Rental, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rental, ok := s.rentals[id]
	if !ok {
		return entity.Rental{}, false
	}
	return *copyRental(rental), true
}

func (s *Store) GenreCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.genres)
}
