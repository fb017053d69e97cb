package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/errors"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// Neo4jStore implements Store against a Neo4j server. Sessions are opened
// per call and closed before returning; the underlying driver pools
// connections.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	log      *logger.Logger
}

// NewNeo4jStore connects to Neo4j and verifies connectivity.
func NewNeo4jStore(ctx context.Context, cfg config.Neo4jConfig, log *logger.Logger) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Unavailable("graph database unreachable").WithCause(err)
	}

	log.Info("connected to graph database", "uri", cfg.URI, "database", cfg.Database)

	return &Neo4jStore{
		driver:   driver,
		database: cfg.Database,
		log:      log,
	}, nil
}

// Close releases the driver's connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Ping verifies the backend is reachable.
func (s *Neo4jStore) Ping(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return errors.Unavailable("graph database unreachable").WithCause(err)
	}
	return nil
}

func (s *Neo4jStore) readSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
}

func (s *Neo4jStore) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
}

// run executes a write statement and discards the result.
func (s *Neo4jStore) run(ctx context.Context, query string, params map[string]any) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return queryError(err)
	}
	_, err = result.Consume(ctx)
	return queryError(err)
}

// collect executes a read statement and returns all records.
func (s *Neo4jStore) collect(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, queryError(err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, queryError(err)
	}
	return records, nil
}

// count runs a read statement expected to return a single integer column.
func (s *Neo4jStore) count(ctx context.Context, query string, params map[string]any) (int64, error) {
	records, err := s.collect(ctx, query, params)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recInt64(records[0], records[0].Keys[0]), nil
}

// queryError wraps a driver failure so callers can map it to a 503.
func queryError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Unavailable("graph query failed").WithCause(err)
}

// Record accessors. The driver hands back any-typed values; these coerce
// with zero-value fallbacks.

func recStr(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

func recInt(record *neo4j.Record, key string) int {
	return int(recInt64(record, key))
}

func recInt64(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func recFloat(record *neo4j.Record, key string) float64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func recStrings(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	raw, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func recMaps(record *neo4j.Record, key string) []map[string]any {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	raw, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func propStr(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func propInt64(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func propFloat(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// bookFromProps maps a Book node's properties onto the domain type.
func bookFromProps(props map[string]any) domain.Book {
	return domain.Book{
		BookID:        propStr(props, "bookId"),
		Title:         propStr(props, "title"),
		TitleClean:    propStr(props, "titleClean"),
		Description:   propStr(props, "description"),
		AverageRating: propFloat(props, "averageRating"),
		RatingsCount:  propInt64(props, "ratingsCount"),
		NumPages:      int(propInt64(props, "numPages")),
		Publisher:     propStr(props, "publisher"),
		PubYear:       int(propInt64(props, "pubYear")),
		ImageURL:      propStr(props, "imageUrl"),
		URL:           propStr(props, "url"),
		WorkID:        propStr(props, "workId"),
		ISBN:          propStr(props, "isbn"),
		ISBN13:        propStr(props, "isbn13"),
		ASIN:          propStr(props, "asin"),
		Genre:         propStr(props, "genre"),
	}
}

// recBook extracts a Book node returned under the given column.
func recBook(record *neo4j.Record, key string) (domain.Book, bool) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return domain.Book{}, false
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return domain.Book{}, false
	}
	return bookFromProps(node.Props), true
}
