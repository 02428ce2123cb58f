// Package decode turns raw indexer model records into typed domain
// events. Dispatch is a closed table keyed by model name; field reads
// resolve by member name first and fall back to the declared position,
// defaulting to zero values when a field is missing or mistyped.
package decode

import (
	"log"

	"github.com/louisbranch/eternum-herald/internal/herald/domain"
	"github.com/louisbranch/eternum-herald/internal/herald/indexer"
)

// Model names as declared by the world's event schemas.
const (
	ModelSettleRealm          = "eternum-SettleRealmData"
	ModelBattleStart          = "eternum-BattleStartData"
	ModelBattleJoin           = "eternum-BattleJoinData"
	ModelBattleLeave          = "eternum-BattleLeaveData"
	ModelBattleClaim          = "eternum-BattleClaimData"
	ModelBattlePillage        = "eternum-BattlePillageData"
	ModelConstructionStarted  = "eternum-HyperstructureStartedData"
	ModelConstructionFinished = "eternum-HyperstructureFinishedData"
	ModelGameEnded            = "eternum-GameEndedData"
)

// ModelNames lists every model the decoder understands, in a stable
// order suitable for narrowing the subscription filter.
func ModelNames() []string {
	return []string{
		ModelSettleRealm,
		ModelBattleStart,
		ModelBattleJoin,
		ModelBattleLeave,
		ModelBattleClaim,
		ModelBattlePillage,
		ModelConstructionStarted,
		ModelConstructionFinished,
		ModelGameEnded,
	}
}

// Decoder maps raw model records onto domain events.
type Decoder struct {
	logf func(format string, args ...any)
}

// New builds a decoder. logf defaults to log.Printf.
func New(logf func(format string, args ...any)) *Decoder {
	if logf == nil {
		logf = log.Printf
	}
	return &Decoder{logf: logf}
}

// minFields is the expected member count per model, used to flag schema
// drift. A mismatch is a diagnostic, not an error: decoding proceeds
// with zero defaults for whatever is missing.
var minFields = map[string]int{
	ModelSettleRealm:          17,
	ModelBattleStart:          13,
	ModelBattleJoin:           10,
	ModelBattleLeave:          10,
	ModelBattleClaim:          10,
	ModelBattlePillage:        11,
	ModelConstructionStarted:  8,
	ModelConstructionFinished: 9,
	ModelGameEnded:            5,
}

// Decode returns the typed event for a record, or false for model names
// this service does not understand.
func (d *Decoder) Decode(record indexer.Record) (domain.Event, bool) {
	want, known := minFields[record.ModelName]
	if !known {
		d.logf("decode: unknown model name %q", record.ModelName)
		return nil, false
	}
	if len(record.Fields) < want {
		d.logf("decode: schema mismatch for %s: got %d members, want at least %d",
			record.ModelName, len(record.Fields), want)
	}

	r := reader{fields: record.Fields}
	switch record.ModelName {
	case ModelSettleRealm:
		return d.settleRealm(&r), true
	case ModelBattleStart:
		return d.battleStart(&r), true
	case ModelBattleJoin:
		return d.battleJoin(&r), true
	case ModelBattleLeave:
		return d.battleLeave(&r), true
	case ModelBattleClaim:
		return d.battleClaim(&r), true
	case ModelBattlePillage:
		return d.battlePillage(&r), true
	case ModelConstructionStarted:
		return d.constructionStarted(&r), true
	case ModelConstructionFinished:
		return d.constructionFinished(&r), true
	case ModelGameEnded:
		return d.gameEnded(&r), true
	}
	return nil, false
}

func (d *Decoder) settleRealm(r *reader) domain.Event {
	return domain.SettleRealm{
		ID:                 r.uint32At("id", 0),
		EventID:            r.uint32At("event_id", 1),
		EntityID:           r.uint32At("entity_id", 2),
		Owner:              r.addressAt("owner", 3),
		OwnerName:          r.shortStringAt("owner_name", 4),
		RealmName:          r.shortStringAt("realm_name", 5),
		ResourceTypesCount: r.uint8At("resource_types_count", 7),
		Cities:             r.uint8At("cities", 8),
		Harbors:            r.uint8At("harbors", 9),
		Rivers:             r.uint8At("rivers", 10),
		Regions:            r.uint8At("regions", 11),
		Wonder:             r.uint8At("wonder", 12),
		Order:              r.uint8At("order", 13),
		Position: domain.Position{
			X: r.uint32At("x", 14),
			Y: r.uint32At("y", 15),
		},
		Timestamp: r.uint64At("timestamp", 16),
	}
}

func (d *Decoder) battleStart(r *reader) domain.Event {
	return domain.BattleStart{
		ID:                   r.uint32At("id", 0),
		EventID:              r.uint32At("event_id", 1),
		BattleEntityID:       r.uint32At("battle_entity_id", 2),
		Attacker:             r.addressAt("attacker", 3),
		AttackerName:         r.shortStringAt("attacker_name", 4),
		AttackerArmyEntityID: r.uint32At("attacker_army_entity_id", 5),
		// The schema declares the defender's name ahead of the address.
		DefenderName:         r.shortStringAt("defender_name", 6),
		Defender:             r.addressAt("defender", 7),
		DefenderArmyEntityID: r.uint32At("defender_army_entity_id", 8),
		DurationLeft:         r.uint64At("duration_left", 9),
		Position: domain.Position{
			X: r.uint32At("x", 10),
			Y: r.uint32At("y", 11),
		},
		StructureCategory: r.uint8At("structure_type", 12),
	}
}

func (d *Decoder) battleJoin(r *reader) domain.Event {
	return domain.BattleJoin{
		ID:                 r.uint32At("id", 0),
		EventID:            r.uint32At("event_id", 1),
		BattleEntityID:     r.uint32At("battle_entity_id", 2),
		Joiner:             r.addressAt("joiner", 3),
		JoinerName:         r.shortStringAt("joiner_name", 4),
		JoinerArmyEntityID: r.uint32At("joiner_army_entity_id", 5),
		JoinerSide:         r.shortStringAt("joiner_side", 6),
		DurationLeft:       r.uint64At("duration_left", 7),
		Position: domain.Position{
			X: r.uint32At("x", 8),
			Y: r.uint32At("y", 9),
		},
	}
}

func (d *Decoder) battleLeave(r *reader) domain.Event {
	return domain.BattleLeave{
		ID:                 r.uint32At("id", 0),
		EventID:            r.uint32At("event_id", 1),
		BattleEntityID:     r.uint32At("battle_entity_id", 2),
		Leaver:             r.addressAt("leaver", 3),
		LeaverName:         r.shortStringAt("leaver_name", 4),
		LeaverArmyEntityID: r.uint32At("leaver_army_entity_id", 5),
		LeaverSide:         r.shortStringAt("leaver_side", 6),
		DurationLeft:       r.uint64At("duration_left", 7),
		Position: domain.Position{
			X: r.uint32At("x", 8),
			Y: r.uint32At("y", 9),
		},
	}
}

func (d *Decoder) battleClaim(r *reader) domain.Event {
	return domain.BattleClaim{
		ID:                  r.uint32At("id", 0),
		EventID:             r.uint32At("event_id", 1),
		StructureEntityID:   r.uint32At("structure_entity_id", 2),
		Claimer:             r.addressAt("claimer", 3),
		ClaimerName:         r.shortStringAt("claimer_name", 4),
		ClaimerArmyEntityID: r.uint32At("claimer_army_entity_id", 5),
		PreviousOwner:       r.addressAt("previous_owner", 6),
		Position: domain.Position{
			X: r.uint32At("x", 7),
			Y: r.uint32At("y", 8),
		},
		StructureCategory: r.uint8At("structure_type", 9),
	}
}

func (d *Decoder) battlePillage(r *reader) domain.Event {
	return domain.BattlePillage{
		ID:                        r.uint32At("id", 0),
		EventID:                   r.uint32At("event_id", 1),
		Pillager:                  r.addressAt("pillager", 2),
		PillagerName:              r.shortStringAt("pillager_name", 3),
		PillagerArmyEntityID:      r.uint32At("pillager_army_entity_id", 4),
		PillagedStructureOwner:    r.addressAt("pillaged_structure_owner", 5),
		PillagedStructureEntityID: r.uint32At("pillaged_structure_entity_id", 6),
		Winner:                    r.addressAt("winner", 7),
		Position: domain.Position{
			X: r.uint32At("x", 8),
			Y: r.uint32At("y", 9),
		},
		StructureCategory: r.uint8At("structure_type", 10),
		Resources:         r.resourceList(11),
	}
}

func (d *Decoder) constructionStarted(r *reader) domain.Event {
	return domain.ConstructionStarted{
		ID:                r.uint32At("id", 0),
		EventID:           r.uint32At("event_id", 1),
		StructureEntityID: r.uint32At("structure_entity_id", 2),
		Owner:             r.addressAt("owner", 3),
		OwnerName:         r.shortStringAt("owner_name", 4),
		StructureCategory: r.uint8At("structure_type", 5),
		Position: domain.Position{
			X: r.uint32At("x", 6),
			Y: r.uint32At("y", 7),
		},
	}
}

func (d *Decoder) constructionFinished(r *reader) domain.Event {
	return domain.ConstructionFinished{
		ID:                r.uint32At("id", 0),
		EventID:           r.uint32At("event_id", 1),
		StructureEntityID: r.uint32At("structure_entity_id", 2),
		Owner:             r.addressAt("owner", 3),
		OwnerName:         r.shortStringAt("owner_name", 4),
		StructureCategory: r.uint8At("structure_type", 5),
		Position: domain.Position{
			X: r.uint32At("x", 6),
			Y: r.uint32At("y", 7),
		},
		Timestamp: r.uint64At("timestamp", 8),
	}
}

func (d *Decoder) gameEnded(r *reader) domain.Event {
	return domain.GameEnded{
		ID:         r.uint32At("id", 0),
		EventID:    r.uint32At("event_id", 1),
		Winner:     r.addressAt("winner", 2),
		WinnerName: r.shortStringAt("winner_name", 3),
		Timestamp:  r.uint64At("timestamp", 4),
	}
}

// reader resolves fields by member name with positional fallback and
// never panics: anything missing or mistyped reads as its zero value.
type reader struct {
	fields []indexer.Field
}

func (r *reader) at(name string, pos int) (indexer.Field, bool) {
	if name != "" {
		for _, field := range r.fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	if pos >= 0 && pos < len(r.fields) {
		return r.fields[pos], true
	}
	return indexer.Field{}, false
}

func (r *reader) uint64At(name string, pos int) uint64 {
	field, ok := r.at(name, pos)
	if !ok {
		return 0
	}
	switch field.Kind {
	case indexer.FieldUint:
		return field.Uint
	case indexer.FieldFelt:
		return feltUint64(field.Felt)
	default:
		return 0
	}
}

func (r *reader) uint32At(name string, pos int) uint32 {
	return uint32(r.uint64At(name, pos))
}

func (r *reader) uint8At(name string, pos int) uint8 {
	return uint8(r.uint64At(name, pos))
}

func (r *reader) addressAt(name string, pos int) string {
	field, ok := r.at(name, pos)
	if !ok || field.Kind != indexer.FieldFelt {
		return ""
	}
	return feltAddress(field.Felt)
}

func (r *reader) shortStringAt(name string, pos int) string {
	field, ok := r.at(name, pos)
	if !ok || field.Kind != indexer.FieldFelt {
		return ""
	}
	return feltShortString(field.Felt)
}

// resourceList reads the trailing (resource id, amount) pairs starting
// at the given position. The sentinel first entry is kept; the router
// trims it before rendering.
func (r *reader) resourceList(start int) []domain.ResourceAmount {
	var resources []domain.ResourceAmount
	for i := start; i+1 < len(r.fields); i += 2 {
		resources = append(resources, domain.ResourceAmount{
			ID:     r.uint8At("", i),
			Amount: r.uint64At("", i+1),
		})
	}
	return resources
}
