// Package committer implements the Golden Mutation Pattern for Spanner
// transactions.
//
// Repositories return mutations instead of applying them; usecases collect
// mutations from every source (aggregate writes plus their outbox events) into
// a CommitPlan and apply them atomically at the end. Either the whole plan
// commits or none of it does, so a cart row and its events can never diverge.
//
// The typical flow in a usecase is:
//
//	plan := committer.NewPlan()
//	mut, err := repo.UpsertMut(cart)
//	plan.Add(mut)
//	for _, event := range cart.DomainEvents() {
//	    plan.Add(outboxRepo.InsertMut(outboxRepo.EnrichEvent(event, payload)))
//	}
//	return committer.Apply(ctx, plan)
//
// Cart writes are last-writer-wins by design: one logged-in session per owner
// in practice, and a full-replace upsert is idempotent, so there is no
// version-check variant here.
package committer

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
)

// CommitPlan is a typed wrapper around Spanner mutations for the Golden Mutation Pattern.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return errors.Wrap(err, "failed to apply commit plan")
	}

	return nil
}

// ApplyWithReadWriteTransaction executes work within a read-write transaction.
// This is useful when reads must happen before building mutations.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	if err != nil {
		return errors.Wrap(err, "transaction failed")
	}
	return nil
}
