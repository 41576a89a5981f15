package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
	"github.com/bookstore/bookstore-admin/internal/mocks"
	"github.com/bookstore/bookstore-admin/internal/testutil"
)

func bookPage(page, perPage, total int, books ...model.Book) model.Page[model.Book] {
	p := model.Pagination{Page: page, PerPage: perPage, Total: total}
	p.Recompute()
	return model.Page[model.Book]{Items: books, Pagination: p}
}

func newBookService(t *testing.T) (*BookService, *mocks.MockBookAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockBookAPI(ctrl)
	return NewBookService(BookServiceOptions{API: api}), api
}

func TestNewBookService_RequiredDependency(t *testing.T) {
	assert.Panics(t, func() {
		NewBookService(BookServiceOptions{})
	})
}

func TestBookService_LoadMergesQuery(t *testing.T) {
	svc, api := newBookService(t)
	ctx := context.Background()

	api.EXPECT().
		List(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, q model.BookQuery) (model.Page[model.Book], error) {
			assert.Equal(t, "golang", q.Search)
			assert.Equal(t, 2, q.Page)
			assert.Equal(t, model.DefaultPerPage, q.PerPage)
			require.NotNil(t, q.ActiveOnly)
			assert.True(t, *q.ActiveOnly)
			return bookPage(2, 20, 21, testutil.NewBook(21).Build()), nil
		})

	page, err := svc.Load(ctx, model.BookQuery{PageParams: model.PageParams{Page: 2}, Search: "golang"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, svc.Pagination().Pages)
	assert.Equal(t, "golang", svc.Query().Search)
	assert.False(t, svc.Loading())

	svc.ClearSearch()
	assert.Empty(t, svc.Query().Search)
	assert.Equal(t, 1, svc.Query().Page)
}

func TestBookService_LoadRecordsError(t *testing.T) {
	svc, api := newBookService(t)
	ctx := context.Background()
	api.EXPECT().List(ctx, gomock.Any()).Return(model.Page[model.Book]{}, apperrors.NotFound("book not found"))

	_, err := svc.Load(ctx, model.BookQuery{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "book not found", svc.LastError())

	svc.ClearError()
	assert.Empty(t, svc.LastError())
}

func TestBookService_AddOnFirstPage(t *testing.T) {
	svc, api := newBookService(t)
	ctx := context.Background()

	existing := make([]model.Book, 0, 2)
	for i := int64(1); i <= 2; i++ {
		existing = append(existing, testutil.NewBook(i).Build())
	}
	api.EXPECT().List(ctx, gomock.Any()).Return(bookPage(1, 2, 2, existing...), nil)
	_, err := svc.Load(ctx, model.BookQuery{PageParams: model.PageParams{PerPage: 2}})
	require.NoError(t, err)

	created := testutil.NewBook(3).Build()
	api.EXPECT().Create(ctx, gomock.Any()).Return(created, nil)
	_, err = svc.Add(ctx, model.CreateBookRequest{ISBN: created.ISBN, Name: created.Name})
	require.NoError(t, err)

	books := svc.Books()
	require.Len(t, books, 2, "list stays trimmed to per_page")
	assert.Equal(t, int64(3), books[0].ID)
	assert.Equal(t, int64(1), books[1].ID)
	assert.Equal(t, 3, svc.Pagination().Total)
	assert.Equal(t, 2, svc.Pagination().Pages)
}

func TestBookService_AddOnLaterPageLeavesList(t *testing.T) {
	svc, api := newBookService(t)
	ctx := context.Background()
	api.EXPECT().List(ctx, gomock.Any()).Return(bookPage(2, 20, 21, testutil.NewBook(21).Build()), nil)
	_, err := svc.Load(ctx, model.BookQuery{PageParams: model.PageParams{Page: 2}})
	require.NoError(t, err)

	api.EXPECT().Create(ctx, gomock.Any()).Return(testutil.NewBook(22).Build(), nil)
	_, err = svc.Add(ctx, model.CreateBookRequest{})
	require.NoError(t, err)

	assert.Len(t, svc.Books(), 1)
	assert.Equal(t, 21, svc.Pagination().Total)
}

func TestBookService_EditReplacesListAndCurrent(t *testing.T) {
	svc, api := newBookService(t)
	ctx := context.Background()
	original := testutil.NewBook(1).Build()
	api.EXPECT().List(ctx, gomock.Any()).Return(bookPage(1, 20, 1, original), nil)
	api.EXPECT().Get(ctx, "1").Return(original, nil)
	_, err := svc.Load(ctx, model.BookQuery{})
	require.NoError(t, err)
	_, err = svc.Fetch(ctx, "1")
	require.NoError(t, err)

	renamed := testutil.NewBook(1).WithName("Renamed").Build()
	name := "Renamed"
	req := model.UpdateBookRequest{Name: &name}
	api.EXPECT().Update(ctx, int64(1), req).Return(renamed, nil)
	_, err = svc.Edit(ctx, 1, req)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", svc.Books()[0].Name)
	cur, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "Renamed", cur.Name)
}

func TestBookService_Remove(t *testing.T) {
	t.Run("active-only list drops the book", func(t *testing.T) {
		svc, api := newBookService(t)
		ctx := context.Background()
		api.EXPECT().List(ctx, gomock.Any()).Return(bookPage(1, 20, 2, testutil.NewBook(1).Build(), testutil.NewBook(2).Build()), nil)
		api.EXPECT().Get(ctx, "1").Return(testutil.NewBook(1).Build(), nil)
		api.EXPECT().Delete(ctx, int64(1)).Return("book deleted", nil)

		_, err := svc.Load(ctx, model.BookQuery{})
		require.NoError(t, err)
		_, err = svc.Fetch(ctx, "1")
		require.NoError(t, err)

		msg, err := svc.Remove(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "book deleted", msg)
		require.Len(t, svc.Books(), 1)
		assert.Equal(t, int64(2), svc.Books()[0].ID)
		assert.Equal(t, 1, svc.Pagination().Total)
		_, ok := svc.Current()
		assert.False(t, ok)
	})

	t.Run("list including inactive flags the book", func(t *testing.T) {
		svc, api := newBookService(t)
		ctx := context.Background()
		api.EXPECT().List(ctx, gomock.Any()).Return(bookPage(1, 20, 1, testutil.NewBook(1).Build()), nil)
		api.EXPECT().Delete(ctx, int64(1)).Return("book deleted", nil)

		_, err := svc.Load(ctx, model.BookQuery{ActiveOnly: testutil.BoolPtr(false)})
		require.NoError(t, err)
		_, err = svc.Remove(ctx, 1)
		require.NoError(t, err)

		books := svc.Books()
		require.Len(t, books, 1)
		assert.False(t, books[0].IsActive)
		assert.Equal(t, 1, svc.Pagination().Total)
	})

	t.Run("failure keeps the list", func(t *testing.T) {
		svc, api := newBookService(t)
		ctx := context.Background()
		api.EXPECT().List(ctx, gomock.Any()).Return(bookPage(1, 20, 1, testutil.NewBook(1).Build()), nil)
		api.EXPECT().Delete(ctx, int64(1)).Return("", &apperrors.AppError{Code: apperrors.ErrCodeForbidden, Message: "insufficient permission"})

		_, err := svc.Load(ctx, model.BookQuery{})
		require.NoError(t, err)
		_, err = svc.Remove(ctx, 1)
		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
		assert.Equal(t, "insufficient permission", svc.LastError())
		assert.Len(t, svc.Books(), 1)
	})
}

func TestBookService_LoadReturnsDetachedPage(t *testing.T) {
	svc, api := newBookService(t)
	ctx := context.Background()
	api.EXPECT().List(ctx, gomock.Any()).Return(bookPage(1, 20, 2, testutil.NewBook(1).Build(), testutil.NewBook(2).Build()), nil)
	api.EXPECT().Delete(ctx, int64(1)).Return("ok", nil)

	page, err := svc.Load(ctx, model.BookQuery{})
	require.NoError(t, err)
	_, err = svc.Remove(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Items[0].ID, "caller's page is not rewritten")
}
