package source

import (
	"context"
	"fmt"
	"time"

	"github.com/aclements/go-gg/table"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// DefaultMongoTimeout bounds connecting to and reading from MongoDB.
const DefaultMongoTimeout = 30 * time.Second

// MongoSource reads a MongoDB collection into a table.
type MongoSource struct {
	URI        string   `json:"uri" toml:"uri" yaml:"uri"`
	Database   string   `json:"database" toml:"database" yaml:"database"`
	Collection string   `json:"collection" toml:"collection" yaml:"collection"`
	Fields     []string `json:"fields,omitempty" toml:"fields" yaml:"fields"`
	Limit      int64    `json:"limit,omitempty" toml:"limit" yaml:"limit"`
}

// Validate checks that the source names a collection.
func (m *MongoSource) Validate() error {
	switch {
	case m.URI == "":
		return errors.New(errors.ErrCodeInvalidInput, "mongo source needs a uri")
	case m.Database == "":
		return errors.New(errors.ErrCodeInvalidInput, "mongo source needs a database")
	case m.Collection == "":
		return errors.New(errors.ErrCodeInvalidInput, "mongo source needs a collection")
	}
	return nil
}

// Load reads every matching document. With Fields set only those fields
// are read, in that column order.
func (m *MongoSource) Load(ctx context.Context) (*table.Table, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultMongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	defer client.Disconnect(context.Background())

	opts := options.Find()
	if m.Limit > 0 {
		opts.SetLimit(m.Limit)
	}
	if len(m.Fields) > 0 {
		proj := bson.D{{Key: "_id", Value: 0}}
		for _, f := range m.Fields {
			proj = append(proj, bson.E{Key: f, Value: 1})
		}
		opts.SetProjection(proj)
	}
	cur, err := client.Database(m.Database).Collection(m.Collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s.%s: %w", m.Database, m.Collection, err)
	}
	var docs []bson.D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo read %s.%s: %w", m.Database, m.Collection, err)
	}
	return DocumentsToTable(docs, m.Fields), nil
}

// DocumentsToTable turns documents into a table with one column per
// top-level field. Without fields, columns appear in first-seen order.
func DocumentsToTable(docs []bson.D, fields []string) *table.Table {
	order := fields
	if len(order) == 0 {
		seen := make(map[string]bool)
		for _, d := range docs {
			for _, e := range d {
				if !seen[e.Key] {
					seen[e.Key] = true
					order = append(order, e.Key)
				}
			}
		}
	}

	cols := make(map[string][]any, len(order))
	for _, name := range order {
		cols[name] = make([]any, len(docs))
	}
	for i, d := range docs {
		for _, e := range d {
			if col, ok := cols[e.Key]; ok {
				col[i] = cell(e.Value)
			}
		}
	}

	b := new(table.Builder)
	for _, name := range order {
		b.Add(name, cols[name])
	}
	return b.Done()
}

// cell converts a BSON value to a scalar the column adapter understands.
func cell(v any) any {
	switch x := v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return nil
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float64, string, bool:
		return x
	case primitive.DateTime:
		return x.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(x.T), 0).UTC()
	case primitive.ObjectID:
		return x.Hex()
	case primitive.Decimal128:
		return x.String()
	}
	return fmt.Sprint(v)
}
