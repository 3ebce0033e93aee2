//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"
	"time"

	"github.com/google/wire"
	stripeclient "github.com/stripe/stripe-go/v76/client"

	mailerGateway "figurine/internal/gateway/mailer"
	openaiGateway "figurine/internal/gateway/openai"
	stripeGateway "figurine/internal/gateway/stripe"
	checkout_post "figurine/internal/handlers/rest/checkout_post"
	generate_post "figurine/internal/handlers/rest/generate_post"
	payment_webhook_post "figurine/internal/handlers/rest/payment_webhook_post"
	"figurine/internal/handlers/tasks/order_reconcile"
	"figurine/internal/pkg/config"
	checkoutService "figurine/internal/service/checkout"
	generationService "figurine/internal/service/generation"
	paymentService "figurine/internal/service/payment"

	"figurine/internal/entities"
	"figurine/pkg/background"
	"figurine/pkg/logger"
)

// OrderStore is the keyed order storage both services share. The file and
// postgres drivers satisfy it; main picks one per config.
type OrderStore interface {
	Create(ctx context.Context, order entities.Order) error
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, id string, fn func(entities.Order) (entities.Order, error)) (*entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
}

type Application struct {
	ServiceCheckout   ServiceCheckout
	ServicePayment    ServicePayment
	ServiceGeneration ServiceGeneration
	Authenticator     Authenticator
	BackgroundWorkers *background.Worker
}

type ServiceCheckout interface {
	checkout_post.Service
}

type ServicePayment interface {
	payment_webhook_post.Service
	order_reconcile.Service
}

type ServiceGeneration interface {
	generate_post.Service
}

type Authenticator interface {
	payment_webhook_post.Authenticator
}

func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	store OrderStore,
	publisher paymentService.EventPublisher,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideStripeGateway,
		provideMailerGateway,
		provideOpenAIGateway,

		provideServiceCheckout,
		provideServicePayment,
		provideServiceGeneration,

		provideOrderReconcileTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceCheckout), new(*checkoutService.Service)),
		wire.Bind(new(ServicePayment), new(*paymentService.Service)),
		wire.Bind(new(ServiceGeneration), new(*generationService.Service)),
		wire.Bind(new(Authenticator), new(*stripeGateway.Gateway)),

		wire.Bind(new(checkoutService.Repository), new(OrderStore)),
		wire.Bind(new(paymentService.Repository), new(OrderStore)),
		wire.Bind(new(checkoutService.PaymentGateway), new(*stripeGateway.Gateway)),
		wire.Bind(new(paymentService.Notifier), new(*mailerGateway.Gateway)),
		wire.Bind(new(generationService.Renderer), new(*openaiGateway.Gateway)),

		wire.Bind(new(order_reconcile.Service), new(*paymentService.Service)),
	)
	return &Application{}, nil
}

func provideStripeGateway(cfg *config.Config) *stripeGateway.Gateway {
	api := &stripeclient.API{}
	api.Init(cfg.Stripe.APIKey, nil)

	return stripeGateway.New(api.CheckoutSessions, stripeGateway.Config{
		WebhookSecret:     cfg.Stripe.WebhookSecret,
		UnitPrice:         cfg.Checkout.UnitPrice,
		Currency:          cfg.Checkout.Currency,
		ShippingCountries: cfg.Checkout.ShippingCountries,
		SuccessURL:        cfg.Checkout.SuccessURL,
		CancelURL:         cfg.Checkout.CancelURL,
	})
}

func provideMailerGateway(cfg *config.Config) *mailerGateway.Gateway {
	return mailerGateway.New(mailerGateway.Config{
		Host:          cfg.SMTP.Host,
		Port:          cfg.SMTP.Port,
		Username:      cfg.SMTP.Username,
		Password:      cfg.SMTP.Password,
		From:          cfg.SMTP.From,
		OperatorEmail: cfg.SMTP.OperatorEmail,
		ArtifactsDir:  cfg.Store.ArtifactsDir,
	})
}

func provideOpenAIGateway(cfg *config.Config) *openaiGateway.Gateway {
	return openaiGateway.New(&http.Client{Timeout: 2 * time.Minute}, openaiGateway.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		VisionModel: cfg.OpenAI.VisionModel,
		ImageModel:  cfg.OpenAI.ImageModel,
	})
}

func provideServiceCheckout(
	repository checkoutService.Repository,
	gateway checkoutService.PaymentGateway,
) *checkoutService.Service {
	return checkoutService.New(repository, gateway)
}

func provideServicePayment(
	log logger.Logger,
	repository paymentService.Repository,
	notifier paymentService.Notifier,
	publisher paymentService.EventPublisher,
) *paymentService.Service {
	return paymentService.New(log, repository, notifier, publisher)
}

func provideServiceGeneration(renderer generationService.Renderer, cfg *config.Config) (*generationService.Service, error) {
	return generationService.New(renderer, cfg.Store.ArtifactsDir, cfg.OpenAI.ImageCount)
}

func provideOrderReconcileTask(
	log logger.Logger,
	service order_reconcile.Service,
	cfg *config.Config,
) *order_reconcile.OrderReconcile {
	return order_reconcile.NewOrderReconcile(log, service, cfg.Tasks.OrderReconcileInterval, cfg.Tasks.OrderStaleAfter)
}

func provideTaskList(
	orderReconcileTask *order_reconcile.OrderReconcile,
) []background.Task {
	return []background.Task{
		orderReconcileTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
