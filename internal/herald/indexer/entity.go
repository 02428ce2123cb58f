// Package indexer maintains the subscription to the upstream entity
// indexer: a gRPC client for the filtered entity stream and a manager
// that keeps the stream alive with bounded exponential backoff.
package indexer

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformedEntity marks stream items that could not be mapped into an
// Entity. The subscription manager skips these without tearing down the
// stream.
var ErrMalformedEntity = errors.New("indexer: malformed entity")

// FieldKind classifies one wire-level primitive leaf.
type FieldKind uint8

const (
	// FieldUnknown is a leaf of an unrecognized primitive type.
	FieldUnknown FieldKind = iota
	// FieldUint is an unsigned integer up to 64 bits wide.
	FieldUint
	// FieldFelt is a fixed-width field element: an address, a packed
	// short string, or a wide integer.
	FieldFelt
)

// Field is one typed primitive leaf of a model record.
type Field struct {
	Name string
	Kind FieldKind
	Uint uint64
	Felt *big.Int
}

// Record is one named, schema-tagged model instance emitted for an
// entity update. Fields keep the upstream schema's declared order.
type Record struct {
	ModelName string
	Fields    []Field
}

// Entity is one entity update from the stream.
type Entity struct {
	HashedKeys string
	Records    []Record
}

// entityFromStruct maps a stream payload into an Entity. Errors wrap
// ErrMalformedEntity so callers can skip bad items.
func entityFromStruct(payload *structpb.Struct) (Entity, error) {
	if payload == nil {
		return Entity{}, fmt.Errorf("%w: empty payload", ErrMalformedEntity)
	}
	entity := Entity{
		HashedKeys: payload.GetFields()["hashed_keys"].GetStringValue(),
	}
	models := payload.GetFields()["models"].GetListValue()
	for i, modelValue := range models.GetValues() {
		modelStruct := modelValue.GetStructValue()
		if modelStruct == nil {
			return Entity{}, fmt.Errorf("%w: model %d is not a struct", ErrMalformedEntity, i)
		}
		record, err := recordFromStruct(modelStruct)
		if err != nil {
			return Entity{}, err
		}
		entity.Records = append(entity.Records, record)
	}
	return entity, nil
}

func recordFromStruct(modelStruct *structpb.Struct) (Record, error) {
	name := strings.TrimSpace(modelStruct.GetFields()["name"].GetStringValue())
	if name == "" {
		return Record{}, fmt.Errorf("%w: model without a name", ErrMalformedEntity)
	}
	record := Record{ModelName: name}
	members := modelStruct.GetFields()["members"].GetListValue()
	for i, memberValue := range members.GetValues() {
		memberStruct := memberValue.GetStructValue()
		if memberStruct == nil {
			return Record{}, fmt.Errorf("%w: %s member %d is not a struct", ErrMalformedEntity, name, i)
		}
		record.Fields = append(record.Fields, fieldFromStruct(memberStruct))
	}
	return record, nil
}

// fieldFromStruct is lenient: unparsable values yield zero-valued
// fields of the declared kind rather than an error.
func fieldFromStruct(memberStruct *structpb.Struct) Field {
	fields := memberStruct.GetFields()
	field := Field{Name: fields["name"].GetStringValue()}
	raw := fields["value"].GetStringValue()

	switch fields["type"].GetStringValue() {
	case "u8", "u16", "u32", "u64":
		field.Kind = FieldUint
		field.Uint = parseUint(raw)
	case "u128", "u256", "felt252", "contract_address", "class_hash":
		field.Kind = FieldFelt
		field.Felt = parseFelt(raw)
	default:
		field.Kind = FieldUnknown
	}
	return field
}

func parseUint(raw string) uint64 {
	value, ok := new(big.Int).SetString(normalizeHex(raw), 0)
	if !ok || value.Sign() < 0 || !value.IsUint64() {
		return 0
	}
	return value.Uint64()
}

func parseFelt(raw string) *big.Int {
	value, ok := new(big.Int).SetString(normalizeHex(raw), 0)
	if !ok || value.Sign() < 0 {
		return new(big.Int)
	}
	return value
}

func normalizeHex(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	return raw
}
