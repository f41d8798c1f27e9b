package store_test

import (
	"errors"
	"testing"

	"tokoadmin/internal/apiclient"
	"tokoadmin/internal/models"
	"tokoadmin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogAPI is a mock implementation of store.CatalogAPI.
type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) ListProducts(page int) (*models.Page[models.Product], error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Product]), args.Error(1)
}

func (m *MockCatalogAPI) ListWarehouses() ([]models.Warehouse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Warehouse), args.Error(1)
}

func (m *MockCatalogAPI) AssetURL(path string) string {
	return m.Called(path).String(0)
}

func TestCatalog_ProductsResolvesImages(t *testing.T) {
	api := new(MockCatalogAPI)
	c := store.NewCatalog(api)

	res := &models.Page[models.Product]{
		Data: []models.Product{
			{ID: "p-1", Name: "Beras Premium", Image: "products/beras.png"},
			{ID: "p-2", Name: "Gula Pasir"},
		},
		PageMeta: models.NewPageMeta(1, 10, 2, 2),
	}
	api.On("ListProducts", 1).Return(res, nil).Once()
	api.On("AssetURL", "products/beras.png").Return("https://cdn.toko.test/products/beras.png")
	api.On("AssetURL", "").Return("")

	got, err := c.Products(0)
	require.NoError(t, err)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "https://cdn.toko.test/products/beras.png", got.Data[0].Image)
	assert.Empty(t, got.Data[1].Image)
	assert.Equal(t, "products/beras.png", res.Data[0].Image, "response is not mutated")
	assert.Equal(t, 2, int(got.Total))
	api.AssertExpectations(t)
}

func TestCatalog_Outlets(t *testing.T) {
	api := new(MockCatalogAPI)
	c := store.NewCatalog(api)
	api.On("ListWarehouses").Return([]models.Warehouse{
		{ID: "w-1", Name: "Gudang Utama", Kind: models.KindWarehouse},
		{ID: "o-1", Name: "Outlet Pusat", Kind: models.KindOutlet},
	}, nil).Once()

	outlets, err := c.Outlets()
	require.NoError(t, err)
	require.Len(t, outlets, 1)
	assert.Equal(t, "o-1", outlets[0].ID)
}

func TestCatalog_Errors(t *testing.T) {
	api := new(MockCatalogAPI)
	c := store.NewCatalog(api)
	netErr := &apiclient.NetworkError{Op: "list products", Err: errors.New("timeout")}
	api.On("ListProducts", 2).Return(nil, netErr).Once()
	api.On("ListWarehouses").Return(nil, netErr).Once()

	_, err := c.Products(2)
	assert.ErrorIs(t, err, netErr)
	_, err = c.Outlets()
	assert.ErrorIs(t, err, netErr)
}
