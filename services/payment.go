package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/services/repositories"
	"github.com/AmbHasan/My-quran-journey/shared"
)

const (
	PAYMENT_SVC = "payment_svc"

	paymentCurrency         = "usd"
	eventPaymentSucceeded   = "payment_intent.succeeded"
	webhookNotConfiguredMsg = "webhook not configured"
)

type SubscriptionPlan struct {
	Name     string
	Amount   int64
	Interval string
}

var SubscriptionPlans = map[string]SubscriptionPlan{
	"premium_monthly": {Name: "Premium Monthly", Amount: 499, Interval: "month"},
	"premium_yearly":  {Name: "Premium Yearly", Amount: 4999, Interval: "year"},
	"lifetime":        {Name: "Lifetime Access", Amount: 1999, Interval: "lifetime"},
}

var errPaymentsDisabled = errors.New("payments not configured")

// PaymentIntent is the gateway-neutral part of a payment intent the service needs.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Metadata     map[string]string
}

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	// ConstructEvent verifies the signature and returns the event type with
	// the payment intent it carries, if any.
	ConstructEvent(payload []byte, signature, secret string) (string, *PaymentIntent, error)
}

type PremiumStore interface {
	ActivatePremium(ctx context.Context, userID, planType, paymentIntentID string) (int64, error)
}

type PaymentService struct {
	appContext.DefaultService

	gateway       PaymentGateway
	store         PremiumStore
	webhookSecret string
}

func NewPaymentService(gateway PaymentGateway, store PremiumStore, webhookSecret string) *PaymentService {
	return &PaymentService{
		gateway:       gateway,
		store:         store,
		webhookSecret: webhookSecret,
	}
}

func (svc PaymentService) Id() string {
	return PAYMENT_SVC
}

func (svc *PaymentService) Configure(ctx *appContext.Context) error {
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		svc.gateway = NewStripeGateway(key)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, payment intents disabled")
	}
	svc.webhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	return svc.DefaultService.Configure(ctx)
}

func (svc *PaymentService) Start() error {
	svc.store = repositories.NewUserRepository(svc.Service(POSTGRES_SVC).(*PostgresService).Db())
	return nil
}

func (svc *PaymentService) CreatePaymentIntent(ctx context.Context, user *model.User, planType string) (*dto.PaymentIntentResponse, error) {
	plan, ok := SubscriptionPlans[planType]
	if !ok {
		return nil, shared.NewBadRequestError(shared.ErrInvalidArgument, "Invalid plan type")
	}
	if user.IsPremium {
		return nil, shared.NewBadRequestError(shared.ErrInvalidArgument, "User already has premium access")
	}
	if svc.gateway == nil {
		return nil, shared.NewServiceUnavailableError(errPaymentsDisabled, "Payments are not configured")
	}

	intent, err := svc.gateway.CreatePaymentIntent(ctx, plan.Amount, paymentCurrency, map[string]string{
		"user_id":    user.ID,
		"plan_type":  planType,
		"user_email": user.Email,
	})
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Payment gateway error")
		return nil, shared.NewBadRequestError(err, fmt.Sprintf("Payment error: %v", err))
	}

	log.WithFields(log.Fields{
		"user_id":           user.ID,
		"payment_intent_id": intent.ID,
	}).Info("Payment intent created")

	return &dto.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       plan.Amount,
		Currency:     paymentCurrency,
	}, nil
}

// HandleWebhook verifies a gateway event and activates premium access on a
// successful payment.
func (svc *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*dto.WebhookResponse, error) {
	if svc.webhookSecret == "" {
		log.Error("Webhook secret not configured")
		return &dto.WebhookResponse{Status: webhookNotConfiguredMsg}, nil
	}

	// Verifying an event needs only the secret.
	construct := constructStripeEvent
	if svc.gateway != nil {
		construct = svc.gateway.ConstructEvent
	}

	eventType, intent, err := construct(payload, signature, svc.webhookSecret)
	if err != nil {
		log.WithError(err).Error("Invalid webhook")
		return nil, shared.NewBadRequestError(err, "Invalid payload or signature")
	}

	if eventType == eventPaymentSucceeded && intent != nil {
		userID := intent.Metadata["user_id"]
		if userID != "" {
			planType := intent.Metadata["plan_type"]
			rows, err := svc.store.ActivatePremium(ctx, userID, planType, intent.ID)
			if err != nil {
				log.WithError(err).WithField("user_id", userID).Error("Failed to activate premium")
				return nil, persistenceError(err, "Failed to activate premium")
			}
			log.WithFields(log.Fields{
				"user_id":           userID,
				"payment_intent_id": intent.ID,
				"rows":              rows,
			}).Info("User upgraded to premium")
		}
	}

	return &dto.WebhookResponse{Status: "success"}, nil
}

func (svc *PaymentService) SubscriptionStatus(user *model.User) *dto.SubscriptionStatusResponse {
	planType := user.PlanType
	if planType == "" {
		planType = shared.PlanFree
	}
	return &dto.SubscriptionStatusResponse{
		IsPremium:          user.IsPremium,
		PlanType:           planType,
		PremiumActivatedAt: user.PremiumActivatedAt,
	}
}

// StripeGateway is the PaymentGateway backed by the Stripe API.
type StripeGateway struct {
	sc *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{sc: client.New(secretKey, nil)}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Metadata: pi.Metadata}, nil
}

func (g *StripeGateway) ConstructEvent(payload []byte, signature, secret string) (string, *PaymentIntent, error) {
	return constructStripeEvent(payload, signature, secret)
}

func constructStripeEvent(payload []byte, signature, secret string) (string, *PaymentIntent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return "", nil, err
	}

	eventType := string(event.Type)
	if eventType != eventPaymentSucceeded || event.Data == nil {
		return eventType, nil, nil
	}

	var pi stripe.PaymentIntent
	if err := sonic.Unmarshal(event.Data.Raw, &pi); err != nil {
		return "", nil, fmt.Errorf("failed to decode payment intent: %w", err)
	}
	return eventType, &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Metadata: pi.Metadata}, nil
}
