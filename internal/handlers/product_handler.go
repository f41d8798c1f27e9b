package handlers

import (
	"fmt"
	"strconv"

	"tokoadmin/internal/middleware"
	"tokoadmin/internal/models"
	"tokoadmin/internal/services"
	"tokoadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
	perPage int
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, perPage int) *ProductHandler {
	return &ProductHandler{
		service: service,
		perPage: perPage,
	}
}

// RegisterRoutes registers the product routes. Reads are open to every
// authenticated user, writes to owners and managers.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	manage := middleware.RequireRole(models.RoleOwner, models.RoleManager)
	productRoutes.Post("/", manage, h.HandleCreateProduct)
	productRoutes.Put("/:id", manage, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", manage, h.HandleDeleteProduct)
}

// HandleGetProducts returns one page of products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(c.QueryInt("page", 1), c.QueryInt("per_page", h.perPage))
	if err != nil {
		return respondError(c, "retrieve products", err)
	}
	return c.JSON(page)
}

// HandleGetProductByID retrieves a single product with its details.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, "retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product and its unit details.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var body models.Product
	if err := c.BodyParser(&body); err != nil {
		return badBody(c, err)
	}

	product, err := h.service.CreateProduct(productDraft(body))
	if err != nil {
		return respondError(c, "create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates a product. Details are replaced when given.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var body models.Product
	if err := c.BodyParser(&body); err != nil {
		return badBody(c, err)
	}

	updated, err := h.service.UpdateProduct(c.Params("id"), productDraft(body))
	if err != nil {
		return respondError(c, "update product", err)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct soft-deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, "delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", id),
	})
}

// productDraft turns a JSON product body into the product form. Ids in the
// body are ignored; a missing price becomes "0" and fails validation.
func productDraft(p models.Product) validation.ProductDraft {
	d := validation.ProductDraft{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Details:     make([]validation.ProductDetailDraft, 0, len(p.Details)),
	}
	for _, det := range p.Details {
		d.Details = append(d.Details, validation.ProductDetailDraft{
			Unit:  det.Unit,
			Price: strconv.FormatFloat(det.Price, 'f', -1, 64),
		})
	}
	return d
}
