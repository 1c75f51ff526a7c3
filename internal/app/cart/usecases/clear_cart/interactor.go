package clear_cart

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/committer"
)

// Request contains the owner whose persisted cart should be deleted.
type Request struct {
	OwnerID string
}

// Interactor handles the clear cart use case.
type Interactor struct {
	repo       contracts.CartRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new clear cart interactor.
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

// Execute deletes the owner's persisted cart. Deleting an already-absent cart
// succeeds; the operation is idempotent.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.OwnerID == "" {
		return domain.ErrEmptyOwner
	}

	cart := domain.NewCart(req.OwnerID, i.clock)
	cart.RecordCleared()

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(req.OwnerID))

	for _, event := range cart.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return errors.Wrap(err, "failed to serialize event")
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, string(payload))
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return errors.Wrap(err, "failed to commit cart clear")
	}

	return nil
}
