package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const admissionRetries = 3

// CreateIfNoConflict atomically admits a new booking for a user.
//
// MongoDB cannot enforce a no-overlap constraint with an index, so admission
// runs inside a multi-document transaction that first bumps a per-user guard
// document. Two concurrent admissions for the same user both write the guard,
// which forces one transaction to abort with a transient write conflict; the
// retry then observes the winner's insert and reports it as a conflict.
// Admissions for different users never touch the same guard and proceed in
// parallel.
func (r *MongoBookingRepo) CreateIfNoConflict(ctx context.Context, userID, name string, interval models.Interval) (*models.Booking, *models.ConflictResult, error) {
	client := r.coll.Database().Client()

	var created *models.Booking
	var conflict *models.ConflictResult

	var lastErr error
	for attempt := 0; attempt < admissionRetries; attempt++ {
		created, conflict = nil, nil

		sess, err := client.StartSession()
		if err != nil {
			return nil, nil, fmt.Errorf("could not start mongo session: %w", err)
		}

		txnFn := func(sc mongo.SessionContext) error {
			// Serialize concurrent admissions for this user via a write
			// conflict on the guard document.
			guard := bson.M{"$inc": bson.M{"seq": 1}, "$set": bson.M{"touched_at": time.Now().UTC()}}
			if _, err := r.lockColl.UpdateOne(sc, bson.M{"user_id": userID}, guard,
				options.Update().SetUpsert(true)); err != nil {
				return fmt.Errorf("failed to bump admission guard: %w", err)
			}

			cursor, err := r.coll.Find(sc, overlapFilter(userID, interval),
				options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
			if err != nil {
				return fmt.Errorf("failed to re-check overlap: %w", err)
			}
			var existing []models.Booking
			if err := cursor.All(sc, &existing); err != nil {
				return fmt.Errorf("failed to decode overlap re-check: %w", err)
			}

			if len(existing) > 0 {
				items := make([]models.ConflictItem, 0, len(existing))
				for _, b := range existing {
					items = append(items, models.ConflictItem{
						ID:      b.ID,
						Summary: b.Name,
						Start:   b.Start,
						End:     b.End,
					})
				}
				conflict = &models.ConflictResult{HasConflict: true, Items: items}
				return nil
			}

			booking := models.Booking{
				ID:        uuid.New().String(),
				UserID:    userID,
				Name:      name,
				Start:     interval.Start,
				End:       interval.End,
				CreatedAt: time.Now().UTC(),
			}
			if _, err := r.coll.InsertOne(sc, booking); err != nil {
				return fmt.Errorf("insert booking failed: %w", err)
			}
			created = &booking
			return nil
		}

		err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := txnFn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		sess.EndSession(ctx)

		if err == nil {
			return created, conflict, nil
		}
		lastErr = err
		if !isTransientTxnError(err) {
			break
		}
	}

	return nil, nil, fmt.Errorf("booking admission transaction failed: %w", lastErr)
}

// isTransientTxnError reports whether the transaction aborted with a label
// that permits a retry (typically a write conflict on the guard document).
func isTransientTxnError(err error) bool {
	if mongo.IsTimeout(err) {
		return false
	}
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.HasErrorLabel("TransientTransactionError") ||
		cmdErr.HasErrorLabel("UnknownTransactionCommitResult")
}
