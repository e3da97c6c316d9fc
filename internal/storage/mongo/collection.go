// Package mongo stores tasks as documents in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/storage"
)

type taskDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Text   string             `bson:"text"`
	Status string             `bson:"status"`
}

func (d *taskDocument) toModel() *models.Task {
	return &models.Task{
		ID:     d.ID.Hex(),
		Text:   d.Text,
		Status: d.Status,
	}
}

type Options struct {
	URL            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

type collectionImpl struct {
	logger     zerolog.Logger
	client     *mongo.Client
	collection *mongo.Collection
}

// Open connects to MongoDB and pings the primary before returning.
func Open(ctx context.Context, logger zerolog.Logger, opts Options) (storage.Collection, error) {
	clientOpts := options.Client().
		ApplyURI(opts.URL).
		SetConnectTimeout(opts.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info().
		Str("database", opts.Database).
		Str("collection", opts.Collection).
		Msg("connected to mongo")

	return &collectionImpl{
		logger:     logger,
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

func (c *collectionImpl) FindAll(ctx context.Context) ([]*models.Task, error) {
	cursor, err := c.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []taskDocument
	err = cursor.All(ctx, &docs)
	if err != nil {
		return nil, err
	}

	tasks := make([]*models.Task, len(docs))
	for i := range docs {
		tasks[i] = docs[i].toModel()
	}
	return tasks, nil
}

func (c *collectionImpl) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	doc := taskDocument{
		ID:     primitive.NewObjectID(),
		Text:   task.Text,
		Status: task.Status,
	}

	_, err := c.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (c *collectionImpl) UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	filter := bson.D{{Key: "_id", Value: objectID}}

	var doc taskDocument
	if patch.IsEmpty() {
		// $set rejects an empty document.
		err = c.collection.FindOne(ctx, filter).Decode(&doc)
	} else {
		update := bson.D{{Key: "$set", Value: setDocument(patch)}}
		err = c.collection.FindOneAndUpdate(
			ctx,
			filter,
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (c *collectionImpl) DeleteByID(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := c.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	if err != nil {
		return err
	}
	c.logger.Debug().
		Str("id", id).
		Int64("deleted", res.DeletedCount).
		Msg("deleted document")
	return nil
}

func (c *collectionImpl) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", storage.ErrInvalidID, id)
	}
	return objectID, nil
}

func setDocument(patch models.TaskPatch) bson.D {
	set := bson.D{}
	if patch.Text != nil {
		set = append(set, bson.E{Key: "text", Value: *patch.Text})
	}
	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *patch.Status})
	}
	return set
}
