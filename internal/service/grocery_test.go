package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/grocery-api/internal/domain"
	apperrors "github.com/freshcart/grocery-api/pkg/errors"
	"github.com/freshcart/grocery-api/pkg/pagination"
)

// --- Mocks ---

type mockGroceryRepository struct {
	mock.Mock
}

func (m *mockGroceryRepository) Create(ctx context.Context, g *domain.Grocery) (*domain.Grocery, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grocery), args.Error(1)
}

func (m *mockGroceryRepository) GetByID(ctx context.Context, id int64) (*domain.Grocery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grocery), args.Error(1)
}

func (m *mockGroceryRepository) GetByName(ctx context.Context, name string) (*domain.Grocery, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grocery), args.Error(1)
}

func (m *mockGroceryRepository) List(ctx context.Context, page, perPage int) ([]domain.Grocery, int, error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).([]domain.Grocery), args.Int(1), args.Error(2)
}

func (m *mockGroceryRepository) Update(ctx context.Context, g *domain.Grocery) (*domain.Grocery, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grocery), args.Error(1)
}

func (m *mockGroceryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fakeListCache struct {
	entries     map[[2]int]*pagination.Result[domain.Grocery]
	invalidates int
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{entries: make(map[[2]int]*pagination.Result[domain.Grocery])}
}

func (c *fakeListCache) GetList(ctx context.Context, page, perPage int) (*pagination.Result[domain.Grocery], bool) {
	r, ok := c.entries[[2]int{page, perPage}]
	return r, ok
}

func (c *fakeListCache) SetList(ctx context.Context, page, perPage int, result *pagination.Result[domain.Grocery]) {
	c.entries[[2]int{page, perPage}] = result
}

func (c *fakeListCache) Invalidate(ctx context.Context) {
	c.entries = make(map[[2]int]*pagination.Result[domain.Grocery])
	c.invalidates++
}

func newGroceryTestService(repo *mockGroceryRepository, cache ListCache) *GroceryService {
	return NewGroceryService(repo, nil, cache, newTestLogger())
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(s string) *string { return &s }

// --- Tests ---

func TestListGroceries_CachesResult(t *testing.T) {
	repo := new(mockGroceryRepository)
	cache := newFakeListCache()
	svc := newGroceryTestService(repo, cache)
	ctx := context.Background()

	stored := []domain.Grocery{{ID: 1, Name: "apple", Price: 59, Stock: 100}}
	repo.On("List", ctx, 1, 20).Return(stored, 1, nil).Once()

	params := pagination.Params{Page: 1, PerPage: 20}

	first, err := svc.ListGroceries(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalCount)

	// Second call is served from cache; the repo mock only allows one call.
	second, err := svc.ListGroceries(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	repo.AssertExpectations(t)
}

func TestCreateGrocery_NormalizesName(t *testing.T) {
	repo := new(mockGroceryRepository)
	svc := newGroceryTestService(repo, newFakeListCache())
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(g *domain.Grocery) bool {
		return g.Name == "granny smith apple"
	})).Return(&domain.Grocery{ID: 1, Name: "granny smith apple", Price: 79, Stock: 50}, nil)

	req := &domain.CreateGroceryRequest{Name: "  Granny Smith APPLE ", Price: 79, Stock: 50}

	grocery, err := svc.CreateGrocery(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "granny smith apple", grocery.Name)
	repo.AssertExpectations(t)
}

func TestCreateGrocery_InvalidPrice(t *testing.T) {
	repo := new(mockGroceryRepository)
	svc := newGroceryTestService(repo, newFakeListCache())

	req := &domain.CreateGroceryRequest{Name: "apple", Price: 0, Stock: 10}

	grocery, err := svc.CreateGrocery(context.Background(), req)

	assert.Nil(t, grocery)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateGrocery_BlankName(t *testing.T) {
	repo := new(mockGroceryRepository)
	svc := newGroceryTestService(repo, newFakeListCache())

	req := &domain.CreateGroceryRequest{Name: "   ", Price: 10, Stock: 1}

	grocery, err := svc.CreateGrocery(context.Background(), req)

	assert.Nil(t, grocery)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateGrocery_StockReplacesStoredValue(t *testing.T) {
	repo := new(mockGroceryRepository)
	cache := newFakeListCache()
	svc := newGroceryTestService(repo, cache)
	ctx := context.Background()

	stored := &domain.Grocery{ID: 1, Name: "apple", Price: 59, Stock: 100}
	repo.On("GetByID", ctx, int64(1)).Return(stored, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(g *domain.Grocery) bool {
		// Stock is replaced, not added to the stored level.
		return g.Stock == 25 && g.Price == 59
	})).Return(&domain.Grocery{ID: 1, Name: "apple", Price: 59, Stock: 25}, nil)

	req := &domain.UpdateGroceryRequest{Stock: intPtr(25)}

	grocery, err := svc.UpdateGrocery(ctx, 1, req)

	require.NoError(t, err)
	assert.Equal(t, 25, grocery.Stock)
	assert.Equal(t, 1, cache.invalidates)
	repo.AssertExpectations(t)
}

func TestUpdateGrocery_PartialFields(t *testing.T) {
	repo := new(mockGroceryRepository)
	svc := newGroceryTestService(repo, newFakeListCache())
	ctx := context.Background()

	stored := &domain.Grocery{ID: 1, Name: "apple", Price: 59, Unit: "piece", Stock: 100}
	repo.On("GetByID", ctx, int64(1)).Return(stored, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(g *domain.Grocery) bool {
		return g.Price == 65 && g.Name == "apple" && g.Stock == 100 && g.Unit == "piece"
	})).Return(&domain.Grocery{ID: 1, Name: "apple", Price: 65, Unit: "piece", Stock: 100}, nil)

	grocery, err := svc.UpdateGrocery(ctx, 1, &domain.UpdateGroceryRequest{Price: int64Ptr(65)})

	require.NoError(t, err)
	assert.Equal(t, int64(65), grocery.Price)
	repo.AssertExpectations(t)
}

func TestUpdateGrocery_NoFields(t *testing.T) {
	repo := new(mockGroceryRepository)
	svc := newGroceryTestService(repo, newFakeListCache())

	grocery, err := svc.UpdateGrocery(context.Background(), 1, &domain.UpdateGroceryRequest{})

	assert.Nil(t, grocery)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateGrocery_NotFound(t *testing.T) {
	repo := new(mockGroceryRepository)
	svc := newGroceryTestService(repo, newFakeListCache())
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(9)).Return(nil, apperrors.NotFound("grocery", "9"))

	grocery, err := svc.UpdateGrocery(ctx, 9, &domain.UpdateGroceryRequest{Name: strPtr("pear")})

	assert.Nil(t, grocery)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteGrocery_InvalidatesCache(t *testing.T) {
	repo := new(mockGroceryRepository)
	cache := newFakeListCache()
	svc := newGroceryTestService(repo, cache)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(&domain.Grocery{ID: 1, Name: "apple", Stock: 40}, nil)
	repo.On("Delete", ctx, int64(1)).Return(nil)

	deleted, err := svc.DeleteGrocery(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "apple", deleted.Name)
	assert.Equal(t, 0, deleted.Stock)
	assert.Equal(t, 1, cache.invalidates)
	repo.AssertExpectations(t)
}
