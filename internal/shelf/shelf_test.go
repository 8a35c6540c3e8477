package shelf_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/shelf"
	"github.com/booknest/booknest/pkg/inflight"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/booknest/booknest/internal/shelf/mocks"
)

type staticToken string

func (s staticToken) Token(_ context.Context) (string, error) { return string(s), nil }

func newShelf(t *testing.T) (*shelf.Shelf, *service_mocks.MockCollectionService) {
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockCollectionService(c)
	log := zap.NewExample().Named("test")
	return shelf.New(svc, staticToken("tok"), log), svc
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestShelf_AddUpdateDeleteScenario(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)
	ctx := context.Background()

	addReq := model.AddBookRequest{
		GoogleBooksID: "g1",
		Title:         "The Name of the Wind",
		Authors:       []string{"Patrick Rothfuss"},
		ReadStatus:    model.StatusWishlist,
	}
	created := model.Book{ID: "b1", GoogleBooksID: "g1", Title: addReq.Title, Authors: addReq.Authors, ReadStatus: model.StatusWishlist}
	svc.EXPECT().AddBook(gomock.Any(), gomock.Any(), addReq).Return(created, http.StatusCreated, nil)

	book, err := s.Add(ctx, addReq)
	require.NoError(t, err)
	require.Equal(t, "b1", book.ID)
	require.Equal(t, []model.Book{created}, s.Books())

	// change status: local record is replaced with the server's response
	current := created
	current.ReadStatus = model.StatusCurrent
	svc.EXPECT().
		UpdateBook(gomock.Any(), gomock.Any(), "b1", model.UpdateBookRequest{ReadStatus: readStatusPtr(model.StatusCurrent)}).
		Return(current, http.StatusOK, nil)
	book, err = s.SetStatus(ctx, "b1", model.StatusCurrent)
	require.NoError(t, err)
	require.Equal(t, model.StatusCurrent, book.ReadStatus)
	require.Equal(t, []model.Book{current}, s.Books())

	// rating leaves the status untouched
	rated := current
	rated.UserRating = intp(4)
	svc.EXPECT().
		UpdateBook(gomock.Any(), gomock.Any(), "b1", model.UpdateBookRequest{UserRating: intp(4)}).
		Return(rated, http.StatusOK, nil)
	book, err = s.Rate(ctx, "b1", 4)
	require.NoError(t, err)
	require.Equal(t, intp(4), book.UserRating)
	require.Equal(t, model.StatusCurrent, book.ReadStatus)

	svc.EXPECT().DeleteBook(gomock.Any(), gomock.Any(), "b1").Return(http.StatusNoContent, nil)
	require.NoError(t, s.Remove(ctx, "b1"))
	require.Empty(t, s.Books())
}

func TestShelf_AddDuplicateIsLocal(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)
	ctx := context.Background()

	addReq := model.AddBookRequest{GoogleBooksID: "g1", Title: "Dune", ReadStatus: model.StatusWishlist}
	created := model.Book{ID: "b1", GoogleBooksID: "g1", Title: "Dune", ReadStatus: model.StatusWishlist}
	// exactly one network call for two adds of the same volume
	svc.EXPECT().AddBook(gomock.Any(), gomock.Any(), addReq).Return(created, http.StatusCreated, nil)

	_, err := s.Add(ctx, addReq)
	require.NoError(t, err)

	_, err = s.Add(ctx, addReq)
	require.ErrorIs(t, err, errs.ErrDuplicateBook)
	require.Len(t, s.Books(), 1)
}

func TestShelf_MutationWithoutIDIsLocal(t *testing.T) {
	t.Parallel()
	s, _ := newShelf(t)
	ctx := context.Background()

	_, err := s.SetStatus(ctx, "", model.StatusPast)
	require.ErrorIs(t, err, errs.ErrNoBookID)
	_, err = s.Rate(ctx, "", 3)
	require.ErrorIs(t, err, errs.ErrNoBookID)
	_, err = s.Review(ctx, "", "great")
	require.ErrorIs(t, err, errs.ErrNoBookID)
	_, err = s.ClearReview(ctx, "")
	require.ErrorIs(t, err, errs.ErrNoBookID)
	require.ErrorIs(t, s.Remove(ctx, ""), errs.ErrNoBookID)
}

func TestShelf_FailureLeavesCollectionUnchanged(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)
	ctx := context.Background()

	books := []model.Book{
		{ID: "b1", GoogleBooksID: "g1", ReadStatus: model.StatusWishlist},
		{ID: "b2", GoogleBooksID: "g2", ReadStatus: model.StatusPast},
	}
	svc.EXPECT().GetBooks(gomock.Any(), gomock.Any()).Return(books, http.StatusOK, nil)
	require.NoError(t, s.Refresh(ctx))

	boom := errors.New("backend down")
	svc.EXPECT().
		UpdateBook(gomock.Any(), gomock.Any(), "b1", gomock.Any()).
		Return(model.Book{}, http.StatusInternalServerError, boom)
	_, err := s.SetStatus(ctx, "b1", model.StatusCurrent)
	require.ErrorIs(t, err, boom)
	require.Equal(t, books, s.Books())

	svc.EXPECT().DeleteBook(gomock.Any(), gomock.Any(), "b2").Return(http.StatusInternalServerError, boom)
	require.ErrorIs(t, s.Remove(ctx, "b2"), boom)
	require.Equal(t, books, s.Books())
}

func TestShelf_PartitionsAreDisjointAndComplete(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)

	books := []model.Book{
		{ID: "b1", GoogleBooksID: "g1", ReadStatus: model.StatusPast},
		{ID: "b2", GoogleBooksID: "g2", ReadStatus: model.StatusCurrent},
		{ID: "b3", GoogleBooksID: "g3", ReadStatus: model.StatusWishlist},
		{ID: "b4", GoogleBooksID: "g4", ReadStatus: model.StatusWishlist},
	}
	svc.EXPECT().GetBooks(gomock.Any(), gomock.Any()).Return(books, http.StatusOK, nil)
	require.NoError(t, s.Refresh(context.Background()))

	parts := s.Partitions()
	seen := map[string]int{}
	total := 0
	for _, status := range model.Statuses() {
		for _, b := range parts[status] {
			require.Equal(t, status, b.ReadStatus)
			seen[b.ID]++
			total++
		}
	}
	require.Equal(t, len(books), total)
	for _, b := range books {
		require.Equal(t, 1, seen[b.ID])
	}
}

func TestShelf_ReviewedView(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)
	ctx := context.Background()

	books := []model.Book{
		{ID: "b1", GoogleBooksID: "g1", ReadStatus: model.StatusPast, UserRating: intp(5)},
		{ID: "b2", GoogleBooksID: "g2", ReadStatus: model.StatusPast, UserReview: strp("slow start")},
		{ID: "b3", GoogleBooksID: "g3", ReadStatus: model.StatusCurrent},
	}
	svc.EXPECT().GetBooks(gomock.Any(), gomock.Any()).Return(books, http.StatusOK, nil)
	require.NoError(t, s.Refresh(ctx))

	reviewed := s.Reviewed()
	require.Len(t, reviewed, 2)
	require.Equal(t, "b1", reviewed[0].ID)
	require.Equal(t, "b2", reviewed[1].ID)

	// clearing both fields removes the record from the view
	cleared := model.Book{ID: "b1", GoogleBooksID: "g1", ReadStatus: model.StatusPast}
	svc.EXPECT().ClearReview(gomock.Any(), gomock.Any(), "b1").Return(cleared, http.StatusOK, nil)
	_, err := s.ClearReview(ctx, "b1")
	require.NoError(t, err)

	reviewed = s.Reviewed()
	require.Len(t, reviewed, 1)
	require.Equal(t, "b2", reviewed[0].ID)
	// the book itself stays in the collection
	require.Len(t, s.Books(), 3)
}

func TestShelf_AddThreadsDraftReview(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)
	ctx := context.Background()

	addReq := model.AddBookRequest{
		GoogleBooksID: "g1",
		Title:         "Hyperion",
		ReadStatus:    model.StatusWishlist,
		UserRating:    intp(5),
		UserReview:    strp("read it twice"),
	}
	created := model.Book{ID: "b1", GoogleBooksID: "g1", Title: "Hyperion", ReadStatus: model.StatusWishlist}
	updated := created
	updated.UserRating = intp(5)
	updated.UserReview = strp("read it twice")

	// the follow-up update must use the id the backend just assigned
	gomock.InOrder(
		svc.EXPECT().AddBook(gomock.Any(), gomock.Any(), addReq).Return(created, http.StatusCreated, nil),
		svc.EXPECT().
			UpdateBook(gomock.Any(), gomock.Any(), "b1", model.UpdateBookRequest{UserRating: intp(5), UserReview: strp("read it twice")}).
			Return(updated, http.StatusOK, nil),
	)

	book, err := s.Add(ctx, addReq)
	require.NoError(t, err)
	require.Equal(t, updated, book)
	require.Equal(t, []model.Book{updated}, s.Books())
}

func TestShelf_OverlappingMutationIsRejected(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)
	ctx := context.Background()

	books := []model.Book{{ID: "b1", GoogleBooksID: "g1", ReadStatus: model.StatusWishlist}}
	svc.EXPECT().GetBooks(gomock.Any(), gomock.Any()).Return(books, http.StatusOK, nil)
	require.NoError(t, s.Refresh(ctx))

	started := make(chan struct{})
	release := make(chan struct{})
	svc.EXPECT().
		UpdateBook(gomock.Any(), gomock.Any(), "b1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, _ string, _ model.UpdateBookRequest) (model.Book, int, error) {
			close(started)
			<-release
			b := books[0]
			b.ReadStatus = model.StatusCurrent
			return b, http.StatusOK, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := s.SetStatus(ctx, "b1", model.StatusCurrent)
		done <- err
	}()
	<-started

	// a second mutation against the same id while the first is in flight
	_, err := s.Rate(ctx, "b1", 3)
	require.ErrorIs(t, err, inflight.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, model.StatusCurrent, s.Books()[0].ReadStatus)
}

func TestShelf_RefreshReplacesInServerOrder(t *testing.T) {
	t.Parallel()
	s, svc := newShelf(t)
	ctx := context.Background()

	first := []model.Book{{ID: "b1", GoogleBooksID: "g1", ReadStatus: model.StatusPast}}
	second := []model.Book{
		{ID: "b3", GoogleBooksID: "g3", ReadStatus: model.StatusWishlist},
		{ID: "b2", GoogleBooksID: "g2", ReadStatus: model.StatusCurrent},
	}
	gomock.InOrder(
		svc.EXPECT().GetBooks(gomock.Any(), gomock.Any()).Return(first, http.StatusOK, nil),
		svc.EXPECT().GetBooks(gomock.Any(), gomock.Any()).Return(second, http.StatusOK, nil),
	)

	require.NoError(t, s.Refresh(ctx))
	require.Equal(t, first, s.Books())
	require.NoError(t, s.Refresh(ctx))
	require.Equal(t, second, s.Books())
}

func readStatusPtr(s model.ReadStatus) *model.ReadStatus { return &s }
