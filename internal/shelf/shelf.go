package shelf

import (
	"context"
	"sync"

	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/service/collection"
	"github.com/booknest/booknest/pkg/inflight"

	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=shelf.go -destination=mocks/mock.go

var _ CollectionService = (*collection.Service)(nil)

// CollectionService is the slice of the backend client the shelf mutates
// through.
type CollectionService interface {
	GetBooks(ctx context.Context, ts collection.TokenSource) ([]model.Book, int, error)
	AddBook(ctx context.Context, ts collection.TokenSource, req model.AddBookRequest) (model.Book, int, error)
	UpdateBook(ctx context.Context, ts collection.TokenSource, id string, req model.UpdateBookRequest) (model.Book, int, error)
	ClearReview(ctx context.Context, ts collection.TokenSource, id string) (model.Book, int, error)
	DeleteBook(ctx context.Context, ts collection.TokenSource, id string) (int, error)
}

// Shelf keeps one user's in-memory book collection consistent with the
// backend. It is the single source of truth for rendering: after every
// mutation the matching record is replaced with the server's response,
// never patched locally, and a failed call leaves the collection untouched.
//
// Mutations against an id that already has a request in flight are
// rejected with inflight.ErrBusy instead of racing on the response order.
type Shelf struct {
	svc  CollectionService
	ts   collection.TokenSource
	gate inflight.Gate
	log  *zap.Logger

	mu    sync.RWMutex
	books []model.Book
}

func New(svc CollectionService, ts collection.TokenSource, log *zap.Logger) *Shelf {
	return &Shelf{
		svc:  svc,
		ts:   ts,
		gate: inflight.New(),
		log:  log,
	}
}

// Refresh replaces the whole collection with the backend's, preserving
// server order.
func (s *Shelf) Refresh(ctx context.Context) error {
	books, _, err := s.svc.GetBooks(ctx, s.ts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.books = books
	s.mu.Unlock()
	return nil
}

// Add puts a catalog volume on the user's shelf. A volume already in the
// collection is rejected locally without a network call. Draft rating and
// review are applied in a follow-up update using the id the backend just
// assigned, so they are never lost to a stale lookup.
func (s *Shelf) Add(ctx context.Context, req model.AddBookRequest) (model.Book, error) {
	s.mu.RLock()
	_, dup := s.findByGoogleID(req.GoogleBooksID)
	s.mu.RUnlock()
	if dup {
		return model.Book{}, errs.ErrDuplicateBook
	}

	var created model.Book
	err := s.gate.Call("add:"+req.GoogleBooksID, func() error {
		var err error
		created, _, err = s.svc.AddBook(ctx, s.ts, req)
		return err
	})
	if err != nil {
		return model.Book{}, err
	}
	s.replace(created)

	if req.UserRating != nil || req.UserReview != nil {
		updated, _, err := s.svc.UpdateBook(ctx, s.ts, created.ID, model.UpdateBookRequest{
			UserRating: req.UserRating,
			UserReview: req.UserReview,
		})
		if err != nil {
			// the add itself stands; only the draft rating/review failed
			s.log.Warn("apply draft rating/review", zap.String("id", created.ID), zap.Error(err))
			return created, nil
		}
		s.replace(updated)
		return updated, nil
	}
	return created, nil
}

func (s *Shelf) SetStatus(ctx context.Context, id string, status model.ReadStatus) (model.Book, error) {
	return s.update(ctx, id, model.UpdateBookRequest{ReadStatus: &status})
}

func (s *Shelf) Rate(ctx context.Context, id string, rating int) (model.Book, error) {
	return s.update(ctx, id, model.UpdateBookRequest{UserRating: &rating})
}

func (s *Shelf) Review(ctx context.Context, id string, review string) (model.Book, error) {
	return s.update(ctx, id, model.UpdateBookRequest{UserReview: &review})
}

// ClearReview drops rating and review together; the book stays on its
// shelf and everything else about it is untouched.
func (s *Shelf) ClearReview(ctx context.Context, id string) (model.Book, error) {
	if id == "" {
		return model.Book{}, errs.ErrNoBookID
	}
	var updated model.Book
	err := s.gate.Call(id, func() error {
		var err error
		updated, _, err = s.svc.ClearReview(ctx, s.ts, id)
		return err
	})
	if err != nil {
		return model.Book{}, err
	}
	s.replace(updated)
	return updated, nil
}

func (s *Shelf) Remove(ctx context.Context, id string) error {
	if id == "" {
		return errs.ErrNoBookID
	}
	err := s.gate.Call(id, func() error {
		_, err := s.svc.DeleteBook(ctx, s.ts, id)
		return err
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Shelf) update(ctx context.Context, id string, req model.UpdateBookRequest) (model.Book, error) {
	if id == "" {
		return model.Book{}, errs.ErrNoBookID
	}
	var updated model.Book
	err := s.gate.Call(id, func() error {
		var err error
		updated, _, err = s.svc.UpdateBook(ctx, s.ts, id, req)
		return err
	})
	if err != nil {
		return model.Book{}, err
	}
	s.replace(updated)
	return updated, nil
}

// replace swaps the local record matching the server response by id, or
// appends it when the id is new.
func (s *Shelf) replace(book model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == book.ID {
			s.books[i] = book
			return
		}
	}
	s.books = append(s.books, book)
}

func (s *Shelf) findByGoogleID(googleID string) (model.Book, bool) {
	for _, b := range s.books {
		if b.GoogleBooksID == googleID {
			return b, true
		}
	}
	return model.Book{}, false
}

// Books returns the collection in server order.
func (s *Shelf) Books() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, len(s.books))
	copy(out, s.books)
	return out
}

func (s *Shelf) Get(id string) (model.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return model.Book{}, false
}

// ByStatus is a pure filter over the current collection.
func (s *Shelf) ByStatus(status model.ReadStatus) []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Book
	for _, b := range s.books {
		if b.ReadStatus == status {
			out = append(out, b)
		}
	}
	return out
}

// Partitions splits the collection into the three shelves. The subsets are
// disjoint and together hold every book.
func (s *Shelf) Partitions() map[model.ReadStatus][]model.Book {
	out := make(map[model.ReadStatus][]model.Book, 3)
	for _, status := range model.Statuses() {
		out[status] = s.ByStatus(status)
	}
	return out
}

// Reviewed returns the books carrying a rating or a review.
func (s *Shelf) Reviewed() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Book
	for _, b := range s.books {
		if b.Reviewed() {
			out = append(out, b)
		}
	}
	return out
}
