package dto

import "time"

type PaymentIntentRequest struct {
	PlanType string `json:"plan_type" validate:"required" example:"premium_monthly"`
}

func (r PaymentIntentRequest) Validate() error {
	return GetValidator().Struct(r)
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret" example:"pi_123_secret_456"`
	Amount       int64  `json:"amount" example:"499"`
	Currency     string `json:"currency" example:"usd"`
}

type WebhookResponse struct {
	Status string `json:"status" example:"success"`
}

type SubscriptionStatusResponse struct {
	IsPremium          bool       `json:"is_premium" example:"true"`
	PlanType           string     `json:"plan_type" example:"premium_monthly"`
	PremiumActivatedAt *time.Time `json:"premium_activated_at"`
}
