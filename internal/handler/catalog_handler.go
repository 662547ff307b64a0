package handler

import (
	"go-commerce-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// POST /api/v1/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	category, err := h.catalog.CreateCategory(c.UserContext(), actor(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

// GET /api/v1/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	page, err := h.catalog.ListCategories(c.UserContext(), pagination(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// POST /api/v1/brands
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var req service.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	brand, err := h.catalog.CreateBrand(c.UserContext(), actor(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(brand)
}

// GET /api/v1/brands
func (h *CatalogHandler) GetBrands(c *fiber.Ctx) error {
	page, err := h.catalog.ListBrands(c.UserContext(), pagination(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// POST /api/v1/colors
func (h *CatalogHandler) CreateColor(c *fiber.Ctx) error {
	var req service.ColorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	color, err := h.catalog.CreateColor(c.UserContext(), actor(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(color)
}

// GET /api/v1/colors
func (h *CatalogHandler) GetColors(c *fiber.Ctx) error {
	colors, err := h.catalog.ListColors(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(colors)
}

// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), actor(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

// GET /api/v1/products
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	page, err := h.catalog.ListProducts(c.UserContext(), pagination(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	product, err := h.catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// POST /api/v1/products/:id/variants
func (h *CatalogHandler) CreateVariant(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	var req service.VariantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	variant, err := h.catalog.AddVariant(c.UserContext(), actor(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(variant)
}

// POST /api/v1/variants/:id/images
func (h *CatalogHandler) CreateImage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid variant ID")
	}

	var req service.ImageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	image, err := h.catalog.AddImage(c.UserContext(), actor(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(image)
}
