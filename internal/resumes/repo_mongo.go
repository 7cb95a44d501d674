package resumes

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepo implements Repo on a MongoDB collection.
type MongoRepo struct {
	Coll *mongo.Collection
}

type mongoResume struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Filename   string             `bson:"filename"`
	Text       string             `bson:"text"`
	ArchiveKey string             `bson:"archive_key,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func toMongo(r Resume) mongoResume {
	return mongoResume{
		Filename:   r.Filename,
		Text:       r.Text,
		ArchiveKey: r.ArchiveKey,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.CreatedAt,
	}
}

func (m mongoResume) toResume() Resume {
	return Resume{
		ID:         m.ID.Hex(),
		Filename:   m.Filename,
		Text:       m.Text,
		ArchiveKey: m.ArchiveKey,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// patchSet renders patch as a $set document.
func patchSet(patch Patch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if patch.Filename != nil {
		set["filename"] = *patch.Filename
	}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	return set
}

func (r *MongoRepo) Insert(ctx context.Context, res Resume) (string, error) {
	out, err := r.Coll.InsertOne(ctx, toMongo(res))
	if err != nil {
		return "", fmt.Errorf("insert resume: %w", err)
	}
	oid, ok := out.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert resume: unexpected id type %T", out.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *MongoRepo) List(ctx context.Context) ([]Resume, error) {
	cur, err := r.Coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoResume
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode resumes: %w", err)
	}
	out := make([]Resume, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toResume())
	}
	return out, nil
}

// Update matches on the ObjectID; strings that are not ObjectID hex match nothing.
func (r *MongoRepo) Update(ctx context.Context, id string, patch Patch, now time.Time) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.Coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": patchSet(patch, now)})
	if err != nil {
		return false, fmt.Errorf("update resume: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.Coll.Database().Client().Ping(ctx, readpref.Primary())
}

var _ Repo = (*MongoRepo)(nil)
