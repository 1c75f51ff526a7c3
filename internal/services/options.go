package services

import (
	"context"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cartqueries "github.com/light-bringer/cartsync-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/queries/list_events"
	"github.com/light-bringer/cartsync-service/internal/app/cart/repo"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/upsert_cart"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/related_products"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/search_products"
	catalogrepo "github.com/light-bringer/cartsync-service/internal/app/catalog/repo"
	"github.com/light-bringer/cartsync-service/internal/client/identity"
	"github.com/light-bringer/cartsync-service/internal/config"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/committer"
	"github.com/light-bringer/cartsync-service/internal/pkg/pagecache"
	transporthttp "github.com/light-bringer/cartsync-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client
	Router        http.Handler
	Checkout      *CheckoutOptions
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Spanner client")
	}

	// 2. Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// 3. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	cache := pagecache.NewRedisCache(redisClient, cfg.PageCacheTTL, logger)

	// 4. Create repositories and read models
	cartRepo := repo.NewCartRepo(spannerClient, clk)
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	eventReadModel := repo.NewEventsReadModel(spannerClient)
	catalogReadModel := catalogrepo.NewReadModel(spannerClient)

	// 5. Create command use cases (write operations)
	upsertCartUseCase := upsert_cart.NewInteractor(cartRepo, outboxRepo, comm, clk)
	clearCartUseCase := clear_cart.NewInteractor(cartRepo, outboxRepo, comm, clk)

	// 6. Create query use cases (read operations)
	getCartQuery := cartqueries.NewQuery(cartRepo)
	listEventsQuery := list_events.NewQuery(eventReadModel)
	listProductsQuery := list_products.NewQuery(catalogReadModel)
	getProductQuery := get_product.NewQuery(catalogReadModel)
	listCategoriesQuery := list_categories.NewQuery(catalogReadModel)
	searchProductsQuery := search_products.NewQuery(catalogReadModel)
	relatedProductsQuery := related_products.NewQuery(catalogReadModel)

	// 7. Create HTTP transport
	verifier := identity.NewClient(cfg.IdentityVerifyURL)
	cartHandler := transporthttp.NewCartHandler(upsertCartUseCase, clearCartUseCase, getCartQuery, logger)
	catalogHandler := transporthttp.NewCatalogHandler(
		listProductsQuery,
		getProductQuery,
		listCategoriesQuery,
		searchProductsQuery,
		relatedProductsQuery,
		cache,
		logger,
	)
	eventsHandler := transporthttp.NewEventsHandler(listEventsQuery)
	revalidateHandler := transporthttp.NewRevalidateHandler(cfg.RevalidationToken, cache, logger)

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		Cart:       cartHandler,
		Catalog:    catalogHandler,
		Events:     eventsHandler,
		Revalidate: revalidateHandler,
		Verifier:   verifier,
		Logger:     logger,
	})

	// 8. Compose the checkout side (stash, coordinator collaborators)
	checkout := NewCheckoutOptions(cfg, redisClient, logger)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		RedisClient:   redisClient,
		Router:        router,
		Checkout:      checkout,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
}
