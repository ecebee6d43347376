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

// ISurveyRepository defines survey persistence
type ISurveyRepository interface {
	Create(ctx context.Context, survey *model.Survey) (*model.Survey, error)
	FindAll(ctx context.Context) ([]*model.Survey, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Survey, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SurveyRepository implements survey persistence over MongoDB
type SurveyRepository struct {
	collection *mongo.Collection
}

func NewSurveyRepository(db *mongo.Database) ISurveyRepository {
	return &SurveyRepository{collection: db.Collection("surveys")}
}

func (r *SurveyRepository) Create(ctx context.Context, survey *model.Survey) (*model.Survey, error) {
	now := time.Now()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, survey)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		survey.ID = oid
	}
	return survey, nil
}

func (r *SurveyRepository) FindAll(ctx context.Context) ([]*model.Survey, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := []*model.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *SurveyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error) {
	var survey *model.Survey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return survey, nil
}

func (r *SurveyRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Survey, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var survey *model.Survey
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return survey, nil
}

func (r *SurveyRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *SurveyRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
