package indexer

import (
	"errors"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
)

func mustStruct(t *testing.T, value map[string]any) *structpb.Struct {
	t.Helper()
	payload, err := structpb.NewStruct(value)
	if err != nil {
		t.Fatalf("build struct: %v", err)
	}
	return payload
}

func TestEntityFromStructMapsModels(t *testing.T) {
	payload := mustStruct(t, map[string]any{
		"hashed_keys": "0xabc",
		"models": []any{
			map[string]any{
				"name": "eternum-BattleStartData",
				"members": []any{
					map[string]any{"name": "id", "type": "u32", "value": "0x2a"},
					map[string]any{"name": "attacker", "type": "contract_address", "value": "0xdeadbeef"},
					map[string]any{"name": "duration_left", "type": "u64", "value": "7200"},
				},
			},
		},
	})

	entity, err := entityFromStruct(payload)
	if err != nil {
		t.Fatalf("map entity: %v", err)
	}
	if entity.HashedKeys != "0xabc" {
		t.Fatalf("hashed keys = %q", entity.HashedKeys)
	}
	if len(entity.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(entity.Records))
	}
	record := entity.Records[0]
	if record.ModelName != "eternum-BattleStartData" {
		t.Fatalf("model name = %q", record.ModelName)
	}
	if record.Fields[0].Kind != FieldUint || record.Fields[0].Uint != 42 {
		t.Fatalf("id field = %+v", record.Fields[0])
	}
	if record.Fields[1].Kind != FieldFelt || record.Fields[1].Felt.Text(16) != "deadbeef" {
		t.Fatalf("attacker field = %+v", record.Fields[1])
	}
	if record.Fields[2].Uint != 7200 {
		t.Fatalf("duration field = %+v", record.Fields[2])
	}
}

func TestEntityFromStructRejectsNamelessModel(t *testing.T) {
	payload := mustStruct(t, map[string]any{
		"models": []any{
			map[string]any{"members": []any{}},
		},
	})

	_, err := entityFromStruct(payload)
	if !errors.Is(err, ErrMalformedEntity) {
		t.Fatalf("expected ErrMalformedEntity, got %v", err)
	}
}

func TestEntityFromStructRejectsNilPayload(t *testing.T) {
	_, err := entityFromStruct(nil)
	if !errors.Is(err, ErrMalformedEntity) {
		t.Fatalf("expected ErrMalformedEntity, got %v", err)
	}
}

func TestFieldFromStructLenientOnBadValues(t *testing.T) {
	tests := []struct {
		name     string
		member   map[string]any
		wantKind FieldKind
		wantUint uint64
	}{
		{
			name:     "garbage uint value defaults to zero",
			member:   map[string]any{"name": "id", "type": "u32", "value": "not-a-number"},
			wantKind: FieldUint,
		},
		{
			name:     "missing value defaults to zero",
			member:   map[string]any{"name": "id", "type": "u64"},
			wantKind: FieldUint,
		},
		{
			name:     "unknown type marks field unknown",
			member:   map[string]any{"name": "blob", "type": "bytes31", "value": "0x1"},
			wantKind: FieldUnknown,
		},
		{
			name:     "decimal uint parses",
			member:   map[string]any{"name": "id", "type": "u8", "value": "9"},
			wantKind: FieldUint,
			wantUint: 9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := fieldFromStruct(mustStruct(t, tt.member))
			if field.Kind != tt.wantKind {
				t.Fatalf("kind = %d, want %d", field.Kind, tt.wantKind)
			}
			if field.Uint != tt.wantUint {
				t.Fatalf("uint = %d, want %d", field.Uint, tt.wantUint)
			}
		})
	}
}

func TestFieldFromStructFeltNeverNil(t *testing.T) {
	field := fieldFromStruct(mustStruct(t, map[string]any{
		"name": "owner", "type": "felt252", "value": "garbage",
	}))
	if field.Felt == nil {
		t.Fatal("felt field must not be nil")
	}
	if field.Felt.Sign() != 0 {
		t.Fatalf("unparsable felt should be zero, got %v", field.Felt)
	}
}
