package pinecone

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// upsertItem is one vector on its way to the remote service.
type upsertItem struct {
	Id       string
	Values   []float32
	Metadata map[string]any
}

// queryMatch is one raw similarity result from the remote service.
type queryMatch struct {
	Id       string
	Values   []float32
	Score    float32
	Metadata map[string]any
}

// indexConn is the namespace-bound slice of the Pinecone API the store
// needs. The SDK stays behind this seam so tests can swap in a fake.
type indexConn interface {
	Upsert(ctx context.Context, items []upsertItem) error
	Query(ctx context.Context, values []float32, topK int) ([]queryMatch, error)
	Delete(ctx context.Context, ids []string) error
	Close() error
}

// sdkConn implements indexConn on the official Pinecone SDK.
type sdkConn struct {
	index *pinecone.IndexConnection
}

var _ indexConn = (*sdkConn)(nil)

// dial resolves the index host and opens a connection bound to the
// configured namespace.
func dial(ctx context.Context, cfg Config) (indexConn, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("pinecone: create client: %w", err)
	}

	index, err := client.DescribeIndex(ctx, cfg.IndexName)
	if err != nil {
		return nil, fmt.Errorf("pinecone: describe index %q: %w", cfg.IndexName, err)
	}

	conn, err := client.Index(pinecone.NewIndexConnParams{
		Host:      index.Host,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("pinecone: connect to index %q: %w", cfg.IndexName, err)
	}

	return &sdkConn{index: conn}, nil
}

func (c *sdkConn) Upsert(ctx context.Context, items []upsertItem) error {
	vectors := make([]*pinecone.Vector, 0, len(items))
	for _, item := range items {
		var metadata *pinecone.Metadata
		if len(item.Metadata) > 0 {
			m, err := structpb.NewStruct(item.Metadata)
			if err != nil {
				return fmt.Errorf("pinecone: encode metadata for %q: %w", item.Id, err)
			}
			metadata = m
		}

		values := item.Values
		vectors = append(vectors, &pinecone.Vector{
			Id:       item.Id,
			Values:   &values,
			Metadata: metadata,
		})
	}

	_, err := c.index.UpsertVectors(ctx, vectors)
	return err
}

func (c *sdkConn) Query(ctx context.Context, values []float32, topK int) ([]queryMatch, error) {
	response, err := c.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          values,
		TopK:            uint32(topK),
		IncludeValues:   true,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]queryMatch, 0, len(response.Matches))
	for _, scored := range response.Matches {
		if scored == nil || scored.Vector == nil {
			continue
		}
		match := queryMatch{
			Id:    scored.Vector.Id,
			Score: scored.Score,
		}
		if scored.Vector.Values != nil {
			match.Values = *scored.Vector.Values
		}
		if scored.Vector.Metadata != nil {
			match.Metadata = scored.Vector.Metadata.AsMap()
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (c *sdkConn) Delete(ctx context.Context, ids []string) error {
	return c.index.DeleteVectorsById(ctx, ids)
}

func (c *sdkConn) Close() error {
	return c.index.Close()
}
