package services_test

import (
	"errors"
	"fmt"
	"testing"

	"tokoadmin/internal/models"
	"tokoadmin/internal/services"
	"tokoadmin/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := &models.Page[models.Product]{
		Data: []models.Product{
			{ID: "1", Name: "Product A", Details: []models.ProductDetail{{Unit: "pcs", Price: 10.0}}},
			{ID: "2", Name: "Product B", Details: []models.ProductDetail{{Unit: "box", Price: 20.0}}},
		},
		PageMeta: models.NewPageMeta(1, 10, 2, 2),
	}

	mockRepo.On("List", 1, 10).Return(expected, nil).Once()

	page, err := service.ListProducts(1, 10)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, expected, page)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Name: "Product A"}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 not found")).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func productDraft() validation.ProductDraft {
	return validation.ProductDraft{
		Name:    "  Minyak Goreng ",
		Details: []validation.ProductDetailDraft{{Unit: " liter", Price: "18000"}},
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	normalized := mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Minyak Goreng" && len(p.Details) == 1 && p.Details[0].Unit == "liter" && p.Details[0].Price == 18000
	})

	// Test successful creation
	mockRepo.On("Create", normalized).Return(nil).Once()
	product, err := service.CreateProduct(productDraft())
	assert.NoError(t, err)
	assert.Equal(t, "Minyak Goreng", product.Name)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", normalized).Return(fmt.Errorf("database error")).Once()
	_, err = service.CreateProduct(productDraft())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductInvalidDraft(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	draft := productDraft()
	draft.Details[0].Price = "-1"
	_, err := service.CreateProduct(draft)

	var verr *validation.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "details[0].price")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	stored := &models.Product{ID: "1", Name: "Minyak Goreng"}

	// Test successful update
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "1" && p.Name == "Minyak Goreng"
	})).Return(nil).Once()
	mockRepo.On("GetByID", "1").Return(stored, nil).Once()
	product, err := service.UpdateProduct("1", productDraft())
	assert.NoError(t, err)
	assert.Equal(t, stored, product)
	mockRepo.AssertExpectations(t)

	// Test update failure (e.g., product not found in repo)
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool { return p.ID == "99" })).
		Return(fmt.Errorf("product with ID 99 not found for update")).Once()
	_, err = service.UpdateProduct("99", productDraft())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for update")
	mockRepo.AssertExpectations(t)

	// An invalid draft never reaches the repository.
	_, err = service.UpdateProduct("1", validation.ProductDraft{Name: "x"})
	assert.Error(t, err)
	mockRepo.AssertNumberOfCalls(t, "Update", 2)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Test successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("Delete", "99").Return(fmt.Errorf("product with ID 99 not found for deletion")).Once()
	err = service.DeleteProduct("99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")
	mockRepo.AssertExpectations(t)
}
