package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store interface {
	List(ctx context.Context) ([]*model.Setting, error)
	Get(ctx context.Context, name string) (*model.Setting, error)
	Create(ctx context.Context, s *model.Setting) error
	Update(ctx context.Context, name string, s *model.Setting) (*model.Setting, error)
	Delete(ctx context.Context, name string) error
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureIndexes makes setting names unique.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return fmt.Errorf("create settings index: %w", err)
	}

	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]*model.Setting, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	settings := []*model.Setting{}
	if err := cur.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	return settings, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*model.Setting, error) {
	var found model.Setting

	err := s.coll.FindOne(ctx, bson.M{"name": name}, options.FindOne().SetProjection(bson.M{"_id": 0})).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.ErrNoSuchSetting
	}

	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", name, err)
	}

	return &found, nil
}

// Create stamps the audit times and inserts the setting.
func (s *MongoStore) Create(ctx context.Context, setting *model.Setting) error {
	now := model.NowMillis()
	setting.CreatedTime = now
	setting.UpdatedTime = now

	_, err := s.coll.InsertOne(ctx, setting)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.ErrSettingExists
	}

	if err != nil {
		return fmt.Errorf("create setting %q: %w", setting.Name, err)
	}

	return nil
}

// Update replaces value, description and updated_by, and returns the
// setting as stored afterwards.
func (s *MongoStore) Update(ctx context.Context, name string, setting *model.Setting) (*model.Setting, error) {
	var updated model.Setting

	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		updateDoc(setting, model.NowMillis()),
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"_id": 0}),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.ErrNoSuchSetting
	}

	if err != nil {
		return nil, fmt.Errorf("update setting %q: %w", name, err)
	}

	return &updated, nil
}

func updateDoc(setting *model.Setting, now int64) bson.M {
	return bson.M{"$set": bson.M{
		"value":        setting.Value,
		"description":  setting.Description,
		"updated_by":   setting.UpdatedBy,
		"updated_time": now,
	}}
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete setting %q: %w", name, err)
	}

	if res.DeletedCount == 0 {
		return apperror.ErrNoSuchSetting
	}

	return nil
}

// Value returns the value of the named setting.
func Value(ctx context.Context, store Store, name string) (string, error) {
	s, err := store.Get(ctx, name)
	if err != nil {
		return "", err
	}

	return s.Value, nil
}
