package brands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/autolux/marketplace-api/internal/cache"
	"github.com/autolux/marketplace-api/internal/utils"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Brand), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Brand), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, b *Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(repo Repository, c cache.Cache) *mux.Router {
	r := mux.NewRouter()
	open := mux.MiddlewareFunc(func(next http.Handler) http.Handler { return next })
	NewHandler(repo, c, time.Minute, nil).RegisterRoutes(r, open)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestListIsCachedUntilWrite(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindAll", mock.Anything).Return([]Brand{{ID: "b1", Name: "Fiat"}}, nil).Twice()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*brands.Brand")).Return(nil)
	r := newRouter(repo, cache.NewMemoryCache())

	for i := 0; i < 3; i++ {
		rec := do(r, http.MethodGet, "/brands", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Fiat")
	}
	repo.AssertNumberOfCalls(t, "FindAll", 1)

	rec := do(r, http.MethodPost, "/brands", `{"name":"Volkswagen"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	do(r, http.MethodGet, "/brands", "")
	repo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestCreateRequiresName(t *testing.T) {
	repo := new(MockRepository)
	rec := do(newRouter(repo, cache.NewMemoryCache()), http.MethodPost, "/brands", `{"name":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateAndDeleteMissingBrand(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, utils.NotFound("brand"))
	r := newRouter(repo, cache.NewMemoryCache())

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/brands/ghost", `{"name":"X"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/brands/ghost", "").Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteReturnsRemovedBrand(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, "b1").Return(&Brand{ID: "b1", Name: "Fiat"}, nil)
	repo.On("Delete", mock.Anything, "b1").Return(nil)

	rec := do(newRouter(repo, cache.NewMemoryCache()), http.MethodDelete, "/brands/b1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Fiat"`)
}
