package repository

import (
	"context"
	"time"

	"hostly/mirrorbox/internal/entities"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoRepositories struct {
	Files    Files
	Mirrors  Mirrors
	Attempts Attempts

	db *mongo.Database
}

func NewMongo(logger *zap.SugaredLogger, dbname string, client *mongo.Client) *MongoRepositories {
	db := client.Database(dbname)

	return &MongoRepositories{
		Files:    &fileRepo{db: db, logger: logger},
		Mirrors:  &mirrorRepo{db: db, logger: logger},
		Attempts: &attemptRepo{db: db, logger: logger},
		db:       db,
	}
}

// EnsureIndexes creates the unique indexes the write paths rely on:
// one attempt per (file, mirror) pair and unique mirror names.
func (r *MongoRepositories) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(AttemptCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{"fileId", 1}, {"mirrorId", 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.db.Collection(MirrorCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{"name", 1}},
		Options: options.Index().SetUnique(true),
	})

	return err
}

type fileRepo struct {
	db     *mongo.Database
	logger *zap.SugaredLogger
}

func (r *fileRepo) Save(ctx context.Context, f *entities.File) (bool, error) {
	_, err := r.db.Collection(FileCollection).InsertOne(ctx, f)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *fileRepo) Get(ctx context.Context, id string) (*entities.File, error) {
	var f entities.File

	q := bson.D{{"_id", id}}
	res := r.db.Collection(FileCollection).FindOne(ctx, q)

	if err := res.Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, err
	}

	return &f, nil
}

func (r *fileRepo) UpdateStatus(ctx context.Context, id string, status entities.FileStatus) error {
	q := bson.D{{"_id", id}}
	update := bson.D{{"$set", bson.D{
		{"status", status},
		{"updatedAt", time.Now().UTC()},
	}}}

	_, err := r.db.Collection(FileCollection).UpdateOne(ctx, q, update)
	return err
}

func (r *fileRepo) ListStuckPending(ctx context.Context, olderThan time.Time) ([]*entities.File, error) {
	q := bson.D{
		{"status", entities.FileStatusPending},
		{"createdAt", bson.D{{"$lt", olderThan}}},
	}

	c, err := r.db.Collection(FileCollection).Find(ctx, q)
	if err != nil {
		return nil, err
	}

	var files []*entities.File
	for c.Next(ctx) {
		var f entities.File
		if err := c.Decode(&f); err != nil {
			return nil, err
		}
		files = append(files, &f)
	}

	return files, c.Err()
}

type mirrorRepo struct {
	db     *mongo.Database
	logger *zap.SugaredLogger
}

func (r *mirrorRepo) GetEnabled(ctx context.Context) ([]*entities.Mirror, error) {
	q := bson.D{{"enabled", true}}
	opts := options.Find().SetSort(bson.D{{"priority", 1}})

	c, err := r.db.Collection(MirrorCollection).Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}

	var mirrors []*entities.Mirror
	for c.Next(ctx) {
		var m entities.Mirror
		if err := c.Decode(&m); err != nil {
			return nil, err
		}
		mirrors = append(mirrors, &m)
	}

	return mirrors, c.Err()
}

func (r *mirrorRepo) GetByName(ctx context.Context, name string) (*entities.Mirror, error) {
	var m entities.Mirror

	q := bson.D{{"name", name}}
	res := r.db.Collection(MirrorCollection).FindOne(ctx, q)

	if err := res.Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, err
	}

	return &m, nil
}

type attemptRepo struct {
	db     *mongo.Database
	logger *zap.SugaredLogger
}

func (r *attemptRepo) Get(ctx context.Context, fileID string, mirrorID string) (*entities.MirrorAttempt, error) {
	var a entities.MirrorAttempt

	q := bson.D{{"fileId", fileID}, {"mirrorId", mirrorID}}
	res := r.db.Collection(AttemptCollection).FindOne(ctx, q)

	if err := res.Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}

func (r *attemptRepo) Create(ctx context.Context, a *entities.MirrorAttempt) (bool, error) {
	_, err := r.db.Collection(AttemptCollection).InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *attemptRepo) Update(ctx context.Context, a *entities.MirrorAttempt) error {
	a.UpdatedAt = time.Now().UTC()

	q := bson.D{{"_id", a.ID}}
	_, err := r.db.Collection(AttemptCollection).ReplaceOne(ctx, q, a)
	return err
}

func (r *attemptRepo) ListByFile(ctx context.Context, fileID string) ([]*entities.MirrorAttempt, error) {
	q := bson.D{{"fileId", fileID}}

	c, err := r.db.Collection(AttemptCollection).Find(ctx, q)
	if err != nil {
		return nil, err
	}

	var attempts []*entities.MirrorAttempt
	for c.Next(ctx) {
		var a entities.MirrorAttempt
		if err := c.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, &a)
	}

	return attempts, c.Err()
}

func (r *attemptRepo) FailNonTerminal(ctx context.Context, fileID string, reason string) error {
	q := bson.D{
		{"fileId", fileID},
		{"status", bson.D{{"$ne", entities.AttemptStatusDone}}},
	}
	update := bson.D{{"$set", bson.D{
		{"status", entities.AttemptStatusFailed},
		{"metadata.error", reason},
		{"updatedAt", time.Now().UTC()},
	}}}

	_, err := r.db.Collection(AttemptCollection).UpdateMany(ctx, q, update)
	return err
}
