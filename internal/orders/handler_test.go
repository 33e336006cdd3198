package orders

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
	"github.com/autolux/marketplace-api/internal/utils"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return m.Called(ctx, id, fields).Error(0)
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

func TestCreateOrderUsesCallerAsBuyer(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*orders.Order")).Return(nil)

	rec := do(newRouter(repo, "buyer-1"), http.MethodPost, "/orders", `{"vehicleId":"veh-1","buyerId":"someone-else"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(o *Order) bool {
		return o.BuyerID == "buyer-1" && o.Status == StatusPending && o.VehicleID == "veh-1"
	}))
}

func TestCreateOrderValidation(t *testing.T) {
	repo := new(MockRepository)
	r := newRouter(repo, "buyer-1")

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/orders", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/orders", `{"vehicleId":"v","status":"SHIPPED"}`).Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateOrderNeverTouchesBuyer(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, "o1").Return(&Order{ID: "o1", BuyerID: "buyer-1", Status: StatusApproved}, nil)
	repo.On("Update", mock.Anything, "o1", map[string]any{"status": StatusApproved}).Return(nil)

	rec := do(newRouter(repo, "buyer-1"), http.MethodPut, "/orders/o1", `{"status":"APPROVED","buyerId":"hijack"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"buyerId":"buyer-1"`)
	repo.AssertExpectations(t)
}

func TestUpdateAndDeleteMissingOrder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, utils.NotFound("order"))
	r := newRouter(repo, "buyer-1")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/orders/ghost", `{"status":"CANCELED"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/orders/ghost", "").Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
