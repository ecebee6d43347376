package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"alumnihub/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IUserRepository defines user persistence. Finders return (nil, nil)
// when no document matches; services decide what absence means.
type IUserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	FindPending(ctx context.Context) ([]*model.User, error)
	FindVerifiedAlumni(ctx context.Context) ([]*model.User, error)
	Approve(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error)
	CountAdmins(ctx context.Context) (int64, error)
	CountVerifiedAlumni(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// UserRepository implements user persistence over MongoDB
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) IUserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// pendingFilter matches pending accounts, including legacy records that
// predate the status field and carry only isVerified=false.
func pendingFilter() bson.M {
	return bson.M{
		"isVerified": false,
		"$or": bson.A{
			bson.M{"status": bson.M{"$exists": false}},
			bson.M{"status": model.StatusPending},
		},
	}
}

// EnsureIndexes creates the unique email index. Emails are stored
// lowercased, so uniqueness here is case-insensitive uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user *model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail matches the email case-insensitively so legacy records
// stored with mixed case are still found.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	filter := bson.M{"email": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(email) + "$",
		Options: "i",
	}}

	var user *model.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *UserRepository) FindPending(ctx context.Context) ([]*model.User, error) {
	return r.find(ctx, pendingFilter())
}

func (r *UserRepository) FindVerifiedAlumni(ctx context.Context) ([]*model.User, error) {
	return r.find(ctx, bson.M{"isVerified": true, "isAdmin": false})
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]*model.User, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Approve transitions a pending account to approved in one conditional
// document write. Returns (nil, nil) when the account is missing or no
// longer pending; the caller distinguishes the two.
func (r *UserRepository) Approve(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	filter := pendingFilter()
	filter["_id"] = id

	update := bson.M{"$set": bson.M{
		"status":     model.StatusApproved,
		"isVerified": true,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user *model.User
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user record. Returns false when nothing matched.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// UpdateProfile applies a partial profile update and returns the updated
// record. Verification fields never appear in fields; callers own that.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user *model.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CountAdmins(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"isAdmin": true})
}

func (r *UserRepository) CountVerifiedAlumni(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"isVerified": true, "isAdmin": false})
}
