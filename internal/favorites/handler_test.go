package favorites

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/autolux/marketplace-api/internal/auth"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, f *Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockRepository) FindByUser(ctx context.Context, userID string) ([]Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Favorite), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Favorite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Favorite), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(repo Repository, userID string) *mux.Router {
	r := mux.NewRouter()
	as := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUser(req.Context(), userID, "USER")))
		})
	}
	NewHandler(repo, nil).RegisterRoutes(r, as)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestCreateFavorite(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *Favorite) bool {
		return f.UserID == "u1" && f.VehicleID == "v1"
	})).Return(nil)

	rec := do(newRouter(repo, "u1"), http.MethodPost, "/favorites", `{"vehicleId":"v1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestCreateFavoriteRequiresVehicle(t *testing.T) {
	repo := new(MockRepository)
	rec := do(newRouter(repo, "u1"), http.MethodPost, "/favorites", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListFavoritesOfCaller(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByUser", mock.Anything, "u1").Return([]Favorite{{ID: "f1", UserID: "u1", VehicleID: "v1"}}, nil)

	rec := do(newRouter(repo, "u1"), http.MethodGet, "/favorites", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"f1"`)
}

func TestForeignFavoriteIsHidden(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, "f1").Return(&Favorite{ID: "f1", UserID: "owner"}, nil)
	r := newRouter(repo, "u1")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/favorites/f1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/favorites/f1", "").Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
