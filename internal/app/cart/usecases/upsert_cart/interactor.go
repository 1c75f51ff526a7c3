package upsert_cart

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/committer"
)

// Request contains the data needed to create-or-replace a persisted cart.
// Items must already be validated line items; transport rejects malformed
// payloads before they reach this interactor.
type Request struct {
	OwnerID string
	Items   []*domain.LineItem
}

// Interactor handles the upsert cart use case.
type Interactor struct {
	repo       contracts.CartRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new upsert cart interactor.
func NewInteractor(
	repo contracts.CartRepository,
	outboxRepo contracts.OutboxRepository,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute replaces the owner's persisted cart wholesale. Replaying the same
// request produces the same end state, so callers may retry on transient
// failure. Either the cart row and its outbox events all commit, or nothing
// does; there is no partial write.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Validate request
	if err := i.validate(req); err != nil {
		return err
	}

	// 2. Build the replacement aggregate
	cart := domain.ReconstructCart(req.OwnerID, req.Items, i.clock)
	cart.RecordUpserted()

	// 3. Create commit plan
	plan := committer.NewPlan()

	// 4. Add repository mutation
	mut, err := i.repo.UpsertMut(cart)
	if err != nil {
		return errors.Wrap(err, "failed to build cart mutation")
	}
	plan.Add(mut)

	// 5. Add outbox events
	for _, event := range cart.DomainEvents() {
		payload, err := i.serializeEvent(event)
		if err != nil {
			return errors.Wrap(err, "failed to serialize event")
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, payload)
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	// 6. Apply plan (usecase applies, not handler)
	if err := i.committer.Apply(ctx, plan); err != nil {
		return errors.Wrap(err, "failed to commit cart upsert")
	}

	return nil
}

// validate validates the request.
func (i *Interactor) validate(req *Request) error {
	if req.OwnerID == "" {
		return domain.ErrEmptyOwner
	}
	if req.Items == nil {
		return domain.ErrInvalidProducts
	}
	seen := make(map[domain.ItemKey]bool, len(req.Items))
	for _, item := range req.Items {
		if item == nil {
			return domain.ErrInvalidProducts
		}
		if seen[item.Key()] {
			return domain.ErrInvalidProducts
		}
		seen[item.Key()] = true
	}
	return nil
}

// serializeEvent converts a domain event to JSON payload.
func (i *Interactor) serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
