package cart

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mehkova/storefront-backend/internal/notify"
	"github.com/mehkova/storefront-backend/internal/product"
	"github.com/mehkova/storefront-backend/internal/user"
)

// Handler exposes the cart endpoints. Line details (title, price, image)
// always come from the catalog, never from the client.
type Handler struct {
	store    *Store
	catalog  *product.Service
	notifier notify.Notifier
}

func NewHandler(store *Store, catalog *product.Service, notifier notify.Notifier) *Handler {
	return &Handler{store: store, catalog: catalog, notifier: notifier}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items", h.updateQuantity)
	app.Delete("/api/v1/cart/items/:productID<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addItemRequest struct {
	ProductID int    `json:"productID"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

type updateQuantityRequest struct {
	ProductID int    `json:"productID"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ctx := c.Context()
	return c.JSON(fiber.Map{
		"items":     h.store.Items(ctx, userID),
		"total":     h.store.Total(ctx, userID),
		"itemCount": h.store.ItemCount(ctx, userID),
	})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	p, err := h.catalog.GetByID(payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	ctx := c.Context()
	variant := Variant{Color: payload.Color, Size: payload.Size}
	if existing, ok := h.store.GetItem(ctx, userID, p.ID, variant); ok {
		if !p.InStock(existing.Quantity + 1) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": fmt.Sprintf("Only %d items available", *p.Stock)})
		}
	} else if !p.InStock(1) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "This product is out of stock"})
	}

	change := h.store.AddItem(ctx, userID, Line{
		ProductID: p.ID,
		Title:     p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Color:     payload.Color,
		Size:      payload.Size,
	})
	h.surface(change)

	return c.JSON(fiber.Map{
		"items":     h.store.Items(ctx, userID),
		"total":     h.store.Total(ctx, userID),
		"itemCount": h.store.ItemCount(ctx, userID),
	})
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(updateQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	ctx := c.Context()
	variant := Variant{Color: payload.Color, Size: payload.Size}

	// quantity increases are gated on catalog stock the same way adds are;
	// decreases always go through so stock drops never trap a line
	if existing, ok := h.store.GetItem(ctx, userID, payload.ProductID, variant); ok && payload.Quantity > existing.Quantity {
		if p, err := h.catalog.GetByID(payload.ProductID); err == nil && !p.InStock(payload.Quantity) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": fmt.Sprintf("Only %d items available", *p.Stock)})
		}
	}

	change := h.store.UpdateQuantity(ctx, userID, payload.ProductID, payload.Quantity, variant)
	h.surface(change)

	return c.JSON(fiber.Map{
		"items":     h.store.Items(ctx, userID),
		"total":     h.store.Total(ctx, userID),
		"itemCount": h.store.ItemCount(ctx, userID),
	})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	ctx := c.Context()
	variant := Variant{Color: c.Query("color"), Size: c.Query("size")}
	change := h.store.RemoveItem(ctx, userID, productID, variant)
	h.surface(change)

	return c.JSON(fiber.Map{
		"items":     h.store.Items(ctx, userID),
		"total":     h.store.Total(ctx, userID),
		"itemCount": h.store.ItemCount(ctx, userID),
	})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	change := h.store.Clear(c.Context(), userID, c.QueryBool("silent"))
	h.surface(change)

	return c.JSON(fiber.Map{"items": []Line{}, "total": 0, "itemCount": 0})
}

func (h *Handler) surface(change Change) {
	if msg := change.Message(); msg != "" {
		h.notifier.Success(msg)
	}
}
