// Package store implements the Store interface on MongoDB.
// Products and catalog-page snapshots are plain documents; files go
// to GridFS, content-addressed by sha256 so identical bytes, under any
// name and in any run, are stored exactly once.
//
// If the backend is unreachable at startup the store runs disabled:
// every method returns core.ErrStoreDisabled and the pipeline keeps
// working against local files only.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 5 * time.Second

	productsCollection  = "products"
	snapshotsCollection = "catalog_pages"
	filesCollection     = "fs.files"
)

// MongoStore is the MongoDB-backed document and blob store.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	bucket  *gridfs.Bucket
	enabled bool
}

// Connect opens the document store. An unreachable backend is not an
// error: the returned store is disabled and the degradation is logged
// once, here.
func Connect(ctx context.Context, uri, dbName string) *MongoStore {
	s := &MongoStore{}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(pingCtx, options.Client().ApplyURI(uri))
	if err == nil {
		err = client.Ping(pingCtx, nil)
	}
	if err != nil {
		slog.Warn("document store unavailable, continuing with local files only",
			"uri", uri, "error", err)
		return s
	}

	db := client.Database(dbName)
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		slog.Warn("document store unavailable, continuing with local files only",
			"uri", uri, "error", err)
		return s
	}

	s.client = client
	s.db = db
	s.bucket = bucket
	s.enabled = true
	slog.Info("connected to document store", "db", dbName)
	return s
}

// Enabled reports whether the backend was reachable at startup.
func (s *MongoStore) Enabled() bool { return s.enabled }

// Close releases the backend connection.
func (s *MongoStore) Close(ctx context.Context) error {
	if !s.enabled {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// StoreFile uploads a file as a content-addressed blob and returns
// its id as a hex string. If a blob with the same sha256 already
// exists, its id is returned without re-uploading.
func (s *MongoStore) StoreFile(ctx context.Context, path, filename string, meta core.BlobMeta) (string, error) {
	if !s.enabled {
		return "", core.ErrStoreDisabled
	}

	hash, err := hashFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}

	// Dedup across names, manufacturers, and runs.
	var existing struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err = s.db.Collection(filesCollection).
		FindOne(ctx, bson.M{"metadata.sha256": hash}).
		Decode(&existing)
	if err == nil {
		return existing.ID.Hex(), nil
	}
	if err != mongo.ErrNoDocuments {
		return "", fmt.Errorf("looking up blob by hash: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	metadata := bson.M{}
	for k, v := range meta {
		metadata[k] = v
	}
	metadata["sha256"] = hash
	metadata["stored_at"] = time.Now().UTC().Format(time.RFC3339)

	id, err := s.bucket.UploadFromStream(filename, f,
		options.GridFSUpload().SetMetadata(metadata))
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	return id.Hex(), nil
}

// InsertProducts bulk-inserts a product batch, unordered, stamping
// each document with stored_at. Individual document failures do not
// abort the batch.
func (s *MongoStore) InsertProducts(ctx context.Context, products []core.Product) error {
	if !s.enabled {
		return core.ErrStoreDisabled
	}
	if len(products) == 0 {
		return nil
	}

	storedAt := time.Now().UTC().Format(time.RFC3339)
	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		p["stored_at"] = storedAt
		docs = append(docs, p)
	}

	_, err := s.db.Collection(productsCollection).
		InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		if bwe, ok := err.(mongo.BulkWriteException); ok {
			// Unordered insert: the rest of the batch went through.
			slog.Warn("some product documents failed to insert",
				"failed", len(bwe.WriteErrors), "total", len(docs))
			return nil
		}
		return fmt.Errorf("inserting products: %w", err)
	}
	return nil
}

// SaveSnapshot records a Markdown snapshot of a fetched catalog page.
func (s *MongoStore) SaveSnapshot(ctx context.Context, manufacturerCode, url, markdown string) error {
	if !s.enabled {
		return core.ErrStoreDisabled
	}

	_, err := s.db.Collection(snapshotsCollection).InsertOne(ctx, bson.M{
		"manufacturer": manufacturerCode,
		"url":          url,
		"markdown":     markdown,
		"fetched_at":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("saving page snapshot for %s: %w", url, err)
	}
	return nil
}

// hashFile computes the sha256 of a file's contents.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
