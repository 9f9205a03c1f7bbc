// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// movieDocument is the stored form of a movie. Position is the row index
// into the similarity collection.
type movieDocument struct {
	Position int    `bson:"position"`
	MovieID  int    `bson:"movie_id"`
	Title    string `bson:"title"`
	Tags     string `bson:"tags"`
}

// similarityDocument stores one matrix row.
type similarityDocument struct {
	Position int       `bson:"position"`
	Scores   []float64 `bson:"scores"`
}

// MongoSource loads the catalog from two MongoDB collections.
type MongoSource struct {
	client     *mongo.Client
	movies     *mongo.Collection
	similarity *mongo.Collection
}

// MongoConfig names the database and collections holding the catalog.
type MongoConfig struct {
	URI                  string
	Database             string
	MoviesCollection     string
	SimilarityCollection string
}

// ConnectMongo opens a client and verifies connectivity with a ping. The
// caller must Close the returned source.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return &MongoSource{
		client:     client,
		movies:     db.Collection(cfg.MoviesCollection),
		similarity: db.Collection(cfg.SimilarityCollection),
	}, nil
}

// Name implements Source.
func (s *MongoSource) Name() string {
	return "mongo"
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Load implements Source. Positions in both collections must be dense 0..N-1.
func (s *MongoSource) Load(ctx context.Context) (*Catalog, error) {
	byPosition := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := s.movies.Find(ctx, bson.D{}, byPosition)
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrEmpty
	}

	movies := make([]Movie, len(docs))
	for i, d := range docs {
		if d.Position != i {
			return nil, fmt.Errorf("%w: movie document %d has position %d", ErrMisaligned, i, d.Position)
		}
		movies[i] = Movie{ID: d.MovieID, Title: d.Title, Tags: d.Tags}
	}

	sim, err := s.loadSimilarity(ctx, len(movies))
	if err != nil {
		return nil, err
	}
	return New(movies, sim)
}

// loadSimilarity streams the matrix rows into a flat slice.
func (s *MongoSource) loadSimilarity(ctx context.Context, n int) (*SimilarityMatrix, error) {
	byPosition := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := s.similarity.Find(ctx, bson.D{}, byPosition)
	if err != nil {
		return nil, fmt.Errorf("find similarity rows: %w", err)
	}
	defer cursor.Close(ctx)

	scores := make([]float64, 0, n*n)
	row := 0
	for cursor.Next(ctx) {
		var doc similarityDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode similarity row %d: %w", row, err)
		}
		if doc.Position != row || len(doc.Scores) != n {
			return nil, fmt.Errorf("%w: similarity row %d has position %d and %d scores", ErrMisaligned, row, doc.Position, len(doc.Scores))
		}
		scores = append(scores, doc.Scores...)
		row++
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity rows: %w", err)
	}
	if row != n {
		return nil, fmt.Errorf("%w: %d movies, %d similarity rows", ErrMisaligned, n, row)
	}
	return NewSimilarityMatrix(n, scores)
}

// Store replaces the stored catalog with cat. Used to seed MongoDB from
// file artifacts.
func (s *MongoSource) Store(ctx context.Context, cat *Catalog) error {
	if _, err := s.movies.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}
	if _, err := s.similarity.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear similarity rows: %w", err)
	}

	movieDocs := make([]any, cat.Len())
	for pos, m := range cat.movies {
		movieDocs[pos] = movieDocument{Position: pos, MovieID: m.ID, Title: m.Title, Tags: m.Tags}
	}
	if _, err := s.movies.InsertMany(ctx, movieDocs); err != nil {
		return fmt.Errorf("insert movies: %w", err)
	}

	const batch = 256
	rows := make([]any, 0, batch)
	for pos := 0; pos < cat.Len(); pos++ {
		scores := append([]float64(nil), cat.sim.Row(pos)...)
		rows = append(rows, similarityDocument{Position: pos, Scores: scores})
		if len(rows) == batch || pos == cat.Len()-1 {
			if _, err := s.similarity.InsertMany(ctx, rows); err != nil {
				return fmt.Errorf("insert similarity rows: %w", err)
			}
			rows = rows[:0]
		}
	}
	return nil
}
