package repo

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_cart"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

// CartRepo implements CartRepository for Spanner.
type CartRepo struct {
	client *spanner.Client
	model  *m_cart.Model
	clock  clock.Clock
}

// NewCartRepo creates a new CartRepo.
func NewCartRepo(client *spanner.Client, clk clock.Clock) contracts.CartRepository {
	return &CartRepo{
		client: client,
		model:  m_cart.NewModel(),
		clock:  clk,
	}
}

// UpsertMut creates a mutation that fully replaces the owner's cart.
func (r *CartRepo) UpsertMut(cart *domain.Cart) (*spanner.Mutation, error) {
	if cart.OwnerID() == "" {
		return nil, domain.ErrEmptyOwner
	}

	items := cart.Items()
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode cart items")
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to normalize cart items document")
	}

	data := &m_cart.Data{
		OwnerID: cart.OwnerID(),
		Items:   spanner.NullJSON{Value: doc, Valid: true},
	}
	return r.model.UpsertMut(data), nil
}

// DeleteMut creates a mutation for deleting the owner's cart.
func (r *CartRepo) DeleteMut(ownerID string) *spanner.Mutation {
	return r.model.DeleteMut(ownerID)
}

// GetByOwner retrieves the persisted cart, reconstructing the domain aggregate.
// A missing row yields an empty cart.
func (r *CartRepo) GetByOwner(ctx context.Context, ownerID string) (*domain.Cart, error) {
	row, err := r.client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{ownerID}, []string{
		m_cart.OwnerID,
		m_cart.Items,
		m_cart.CreatedAt,
		m_cart.UpdatedAt,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.NewCart(ownerID, r.clock), nil
		}
		return nil, errors.Wrap(err, "failed to read cart")
	}

	var data m_cart.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, errors.Wrap(err, "failed to parse cart row")
	}

	return r.dataToDomain(&data)
}

// dataToDomain converts database Data to a domain Cart.
func (r *CartRepo) dataToDomain(data *m_cart.Data) (*domain.Cart, error) {
	items := make([]*domain.LineItem, 0)
	if data.Items.Valid && data.Items.Value != nil {
		raw, err := json.Marshal(data.Items.Value)
		if err != nil {
			return nil, errors.Wrap(err, "failed to re-encode cart items document")
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errors.Wrap(err, "failed to decode cart items")
		}
	}

	return domain.ReconstructCart(data.OwnerID, items, r.clock), nil
}
