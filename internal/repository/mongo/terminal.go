package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vpos-orchestrator/internal/domain/terminal"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// TerminalRepository persists terminal.Entity, grounded on the teacher's
// MemberRepository (internal/repository/mongo/member.go), generalized from
// hex ObjectID ids to the string ids this domain generates itself.
type TerminalRepository struct {
	collection *mongo.Collection
}

func NewTerminalRepository(db *mongo.Database) *TerminalRepository {
	return &TerminalRepository{collection: db.Collection("terminals")}
}

func (r *TerminalRepository) Create(ctx context.Context, t *terminal.Entity) error {
	_, err := r.collection.InsertOne(ctx, t)
	return err
}

func (r *TerminalRepository) FindByID(ctx context.Context, id string) (*terminal.Entity, error) {
	var t terminal.Entity
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.ErrNotFound.WithDetails("terminal_id", id)
		}
		return nil, err
	}
	return &t, nil
}

func (r *TerminalRepository) FindForSelection(ctx context.Context, filter terminal.SelectionFilter) ([]terminal.Entity, error) {
	query := bson.M{"active": true, "currencies": filter.Currency}
	if filter.Company != "" {
		query["company"] = filter.Company
	}
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}})
	cur, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var terminals []terminal.Entity
	if err := cur.All(ctx, &terminals); err != nil {
		return nil, err
	}
	return terminals, nil
}

func (r *TerminalRepository) Update(ctx context.Context, id string, patch func(*terminal.Entity)) (*terminal.Entity, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch(t)

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, t)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, pkgerrors.ErrNotFound.WithDetails("terminal_id", id)
	}
	return t, nil
}

func (r *TerminalRepository) SetDefaultForCurrency(ctx context.Context, id string, currency terminal.Currency) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"default_for_currencies": currency}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pkgerrors.ErrNotFound.WithDetails("terminal_id", id)
	}
	return nil
}

func (r *TerminalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pkgerrors.ErrNotFound.WithDetails("terminal_id", id)
	}
	return nil
}
