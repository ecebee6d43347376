package repository

import (
	"context"
	"time"

	"alumnihub/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IEventRepository defines event persistence
type IEventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindAll(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// EventRepository implements event persistence over MongoDB
type EventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *mongo.Database) IEventRepository {
	return &EventRepository{collection: db.Collection("events")}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return event, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*model.Event, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*model.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	var event *model.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Event, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event *model.Event
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
