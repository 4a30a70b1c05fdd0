package store

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/errors"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
)

const (
	mongoDatabase   = "scanner"
	mongoCollection = "state"

	docIDRepos  = "repos"
	docIDStatus = "status"
)

// stateDoc is one upserted document. The payload is the same JSON the
// file store writes, so the two backends stay byte-compatible and
// migrating between them is a copy.
type stateDoc struct {
	ID      string `bson:"_id"`
	Payload []byte `bson:"payload"`
}

// MongoStore keeps both documents in a single collection, one document
// per kind, replaced wholesale on save.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects and pings the deployment.
func NewMongoStore(ctx context.Context, url string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "pinging mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) LoadRepos(ctx context.Context) (map[string]scan.RepoRecord, error) {
	repos := make(map[string]scan.RepoRecord)
	if err := s.load(ctx, docIDRepos, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (s *MongoStore) SaveRepos(ctx context.Context, repos map[string]scan.RepoRecord) error {
	return s.save(ctx, docIDRepos, repos)
}

func (s *MongoStore) LoadStatus(ctx context.Context) (*scan.Status, error) {
	status := scan.NewStatus()
	if err := s.load(ctx, docIDStatus, status); err != nil {
		return nil, err
	}
	if status.LastScanned == nil {
		status.LastScanned = scan.NewStatus().LastScanned
	}
	return status, nil
}

func (s *MongoStore) SaveStatus(ctx context.Context, status *scan.Status) error {
	return s.save(ctx, docIDStatus, status)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) load(ctx context.Context, id string, v any) error {
	var doc stateDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "loading %s document", id)
	}
	if err := json.Unmarshal(doc.Payload, v); err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "parsing %s document", id)
	}
	return nil
}

func (s *MongoStore) save(ctx context.Context, id string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "encoding %s document", id)
	}
	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": id},
		stateDoc{ID: id, Payload: payload},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "saving %s document", id)
	}
	return nil
}
