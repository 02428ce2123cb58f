package indexer

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Filter scopes a subscription to one world and, optionally, an
// allow-list of model names. An empty model list subscribes to every
// keyed model the indexer emits.
type Filter struct {
	WorldAddress string
	Models       []string
}

// Stream yields entity updates until it fails or the context ends.
type Stream interface {
	Recv() (Entity, error)
}

// Client opens filtered entity streams against the indexer.
type Client interface {
	Subscribe(ctx context.Context, filter Filter) (Stream, error)
}

const subscribeEntitiesMethod = "/world.World/SubscribeEntities"

var subscribeEntitiesDesc = grpc.StreamDesc{
	StreamName:    "SubscribeEntities",
	ServerStreams: true,
}

// GRPCClient subscribes over the indexer's server-streaming entity
// endpoint. The payloads are schema-tagged structs, so the call is made
// through the raw stream API and needs no generated bindings.
type GRPCClient struct {
	conn *grpc.ClientConn
}

// NewGRPCClient wraps an established connection to the indexer.
func NewGRPCClient(conn *grpc.ClientConn) *GRPCClient {
	return &GRPCClient{conn: conn}
}

// Subscribe opens the entity stream for the filter.
func (c *GRPCClient) Subscribe(ctx context.Context, filter Filter) (Stream, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("indexer connection is required")
	}
	clientStream, err := c.conn.NewStream(ctx, &subscribeEntitiesDesc, subscribeEntitiesMethod)
	if err != nil {
		return nil, fmt.Errorf("open entity stream: %w", err)
	}
	request, err := filterStruct(filter)
	if err != nil {
		return nil, err
	}
	if err := clientStream.SendMsg(request); err != nil {
		return nil, fmt.Errorf("send entity filter: %w", err)
	}
	if err := clientStream.CloseSend(); err != nil {
		return nil, fmt.Errorf("close send side: %w", err)
	}
	return &grpcStream{clientStream: clientStream}, nil
}

func filterStruct(filter Filter) (*structpb.Struct, error) {
	models := make([]any, 0, len(filter.Models))
	for _, model := range filter.Models {
		models = append(models, model)
	}
	request, err := structpb.NewStruct(map[string]any{
		"world_address": filter.WorldAddress,
		"models":        models,
	})
	if err != nil {
		return nil, fmt.Errorf("build entity filter: %w", err)
	}
	return request, nil
}

type grpcStream struct {
	clientStream grpc.ClientStream
}

// Recv reads the next entity update. Transport errors end the stream;
// unmappable payloads return ErrMalformedEntity so the caller can skip
// the item and keep reading.
func (s *grpcStream) Recv() (Entity, error) {
	payload := new(structpb.Struct)
	if err := s.clientStream.RecvMsg(payload); err != nil {
		return Entity{}, err
	}
	return entityFromStruct(payload)
}
