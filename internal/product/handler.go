package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 8

// Handler exposes the public catalog endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/product/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/categories", h.listCategories)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid page"})
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid limit"})
	}

	matches := h.service.Search(c.Query("search"), c.Query("category"))
	totalPages := (len(matches) + limit - 1) / limit

	return c.JSON(fiber.Map{
		"products":   Page(matches, page, limit),
		"total":      len(matches),
		"page":       page,
		"totalPages": totalPages,
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

func (h *Handler) listCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.service.Categories()})
}
