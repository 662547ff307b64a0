package handler

import (
	"time"

	"go-commerce-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PromoHandler struct {
	promos  service.PromoService
	coupons service.CouponService
	now     func() time.Time
}

func NewPromoHandler(promos service.PromoService, coupons service.CouponService) *PromoHandler {
	return &PromoHandler{promos: promos, coupons: coupons, now: time.Now}
}

// at reads an optional RFC 3339 ?at= instant, defaulting to now.
func (h *PromoHandler) at(c *fiber.Ctx) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return h.now(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, err == nil
}

// POST /api/v1/promos
func (h *PromoHandler) CreatePromo(c *fiber.Ctx) error {
	var req service.PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	promo, err := h.promos.CreatePromo(c.UserContext(), actor(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(promo)
}

// GET /api/v1/promos
func (h *PromoHandler) GetPromos(c *fiber.Ctx) error {
	promos, err := h.promos.ListPromos(c.UserContext(), pagination(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(promos)
}

// Quote prices a variant with its best running promo
// GET /api/v1/variants/:id/quote
func (h *PromoHandler) Quote(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid variant ID")
	}
	at, ok := h.at(c)
	if !ok {
		return badRequest(c, "Invalid 'at' timestamp, use RFC 3339")
	}

	quote, err := h.promos.Quote(c.UserContext(), id, at)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(quote)
}

// POST /api/v1/coupons
func (h *PromoHandler) CreateCoupon(c *fiber.Ctx) error {
	var req service.CouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	coupon, err := h.coupons.CreateCoupon(c.UserContext(), actor(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(coupon)
}

// GET /api/v1/coupons/:code/validity
func (h *PromoHandler) CouponValidity(c *fiber.Ctx) error {
	at, ok := h.at(c)
	if !ok {
		return badRequest(c, "Invalid 'at' timestamp, use RFC 3339")
	}

	validity, err := h.coupons.Validity(c.UserContext(), c.Params("code"), at)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(validity)
}

// POST /api/v1/coupons/:code/redeem
func (h *PromoHandler) RedeemCoupon(c *fiber.Ctx) error {
	coupon, err := h.coupons.Redeem(c.UserContext(), actor(c), c.Params("code"), h.now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(coupon)
}
