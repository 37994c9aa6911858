package services

import "context"

// Recount event kinds, matched by the reconciliation worker.
const (
	RecountJob   = "job"
	RecountDrive = "drive"
)

// RecountQueue receives an event after every write that touches a
// denormalized counter, so drift gets repaired out of band.
type RecountQueue interface {
	Enqueue(ctx context.Context, kind, id string) error
}
