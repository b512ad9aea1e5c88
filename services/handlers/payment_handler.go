package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type PaymentHandler struct {
	paymentSvc PaymentServiceInterface
}

func NewPaymentHandler(paymentSvc PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// @Summary Create payment intent
// @Description Starts a purchase of a subscription plan
// @Tags payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param request body dto.PaymentIntentRequest true "Plan"
// @Success 200 {object} shared.Response{data=dto.PaymentIntentResponse}
// @Failure 400 {object} shared.Response
// @Router /api/create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.PaymentIntentRequest
	if handled, err := parseAndValidate(c, &req); handled {
		return err
	}

	resp, err := h.paymentSvc.CreatePaymentIntent(c.UserContext(), user, req.PlanType)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Payment webhook
// @Description Receives signed payment events
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Event signature"
// @Success 200 {object} shared.Response{data=dto.WebhookResponse}
// @Failure 400 {object} shared.Response
// @Router /api/stripe-webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)

	resp, err := h.paymentSvc.HandleWebhook(c.UserContext(), payload, c.Get("Stripe-Signature"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Subscription status
// @Tags payments
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.SubscriptionStatusResponse}
// @Router /api/subscription-status [get]
func (h *PaymentHandler) SubscriptionStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, h.paymentSvc.SubscriptionStatus(user))
}
