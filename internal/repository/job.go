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

// IJobRepository defines job persistence
type IJobRepository interface {
	Create(ctx context.Context, job *model.Job) (*model.Job, error)
	FindAll(ctx context.Context) ([]*model.Job, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Job, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// JobRepository implements job persistence over MongoDB
type JobRepository struct {
	collection *mongo.Collection
}

func NewJobRepository(db *mongo.Database) IJobRepository {
	return &JobRepository{collection: db.Collection("jobs")}
}

func (r *JobRepository) Create(ctx context.Context, job *model.Job) (*model.Job, error) {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		job.ID = oid
	}
	return job, nil
}

func (r *JobRepository) FindAll(ctx context.Context) ([]*model.Job, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	jobs := []*model.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Job, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job *model.Job
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
