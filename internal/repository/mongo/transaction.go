package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/cryptoutil"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// TransactionRepository persists transaction.Entity, grounded on the
// teacher's MemberRepository (internal/repository/mongo/member.go).
// UpdateStatusAtomic filters on both _id and the expected prior status so
// the compare-and-swap is a single round trip rather than read-then-write.
type TransactionRepository struct {
	collection *mongo.Collection
	cipher     *cryptoutil.FieldCipher
}

func NewTransactionRepository(db *mongo.Database, cipher *cryptoutil.FieldCipher) *TransactionRepository {
	return &TransactionRepository{collection: db.Collection("transactions"), cipher: cipher}
}

func (r *TransactionRepository) Create(ctx context.Context, e *transaction.Entity) error {
	e.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, e)
	return err
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*transaction.Entity, error) {
	var e transaction.Entity
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.ErrNotFound.WithDetails("transaction_id", id)
		}
		return nil, err
	}
	return &e, nil
}

func (r *TransactionRepository) AppendLog(ctx context.Context, id string, entry transaction.LogEntry) error {
	entry.At = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"logs": entry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pkgerrors.ErrNotFound.WithDetails("transaction_id", id)
	}
	return nil
}

// UpdateStatusAtomic is the single-field compare-and-swap spec.md §5's
// linearizability guarantee depends on: the filter requires the document to
// still be in status `from`, so a concurrent writer that already moved it
// elsewhere loses the race and gets ErrConflict rather than clobbering the
// later state.
func (r *TransactionRepository) UpdateStatusAtomic(ctx context.Context, id string, from, to transaction.Status) (*transaction.Entity, error) {
	var e transaction.Entity
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.ErrConflict.WithDetails("transaction_id", id).WithDetails("from", string(from)).WithDetails("to", string(to))
		}
		return nil, err
	}
	return &e, nil
}

// SaveSecure overwrites the whole secure subdocument rather than diffing
// individual keys, since adapters shape their Payload differently per
// provider.
func (r *TransactionRepository) SaveSecure(ctx context.Context, id string, secure transaction.Secure3D) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"secure": secure}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pkgerrors.ErrNotFound.WithDetails("transaction_id", id)
	}
	return nil
}

func (r *TransactionRepository) ClearCVV(ctx context.Context, id string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"card.cvv": ""}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pkgerrors.ErrNotFound.WithDetails("transaction_id", id)
	}
	return nil
}

// GetDecryptedCard returns a decrypted copy of e.Card (e is left unchanged)
// using the store's own cipher,
// keeping card decryption a store-owned seam rather than something usecases
// reach into cryptoutil for directly.
func (r *TransactionRepository) GetDecryptedCard(ctx context.Context, e *transaction.Entity) (transaction.CardFields, error) {
	var out transaction.CardFields
	var err error
	if out.Holder, err = r.cipher.Decrypt(e.Card.Holder); err != nil {
		return transaction.CardFields{}, err
	}
	if out.Number, err = r.cipher.Decrypt(e.Card.Number); err != nil {
		return transaction.CardFields{}, err
	}
	if out.Expiry, err = r.cipher.Decrypt(e.Card.Expiry); err != nil {
		return transaction.CardFields{}, err
	}
	if out.CVV, err = r.cipher.Decrypt(e.Card.CVV); err != nil {
		return transaction.CardFields{}, err
	}
	out.Masked = e.Card.Masked
	out.BIN = e.Card.BIN
	return out, nil
}
