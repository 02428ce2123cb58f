// Package domain defines the typed game events the herald understands,
// along with the coordinate space and the closed resource/structure
// enumerations used when rendering them.
package domain

// Kind identifies one game event variant.
type Kind string

const (
	KindSettleRealm          Kind = "settle-realm"
	KindBattleStart          Kind = "battle-start"
	KindBattleJoin           Kind = "battle-join"
	KindBattleLeave          Kind = "battle-leave"
	KindBattleClaim          Kind = "battle-claim"
	KindBattlePillage        Kind = "battle-pillage"
	KindConstructionStarted  Kind = "construction-started"
	KindConstructionFinished Kind = "construction-finished"
	KindGameEnded            Kind = "game-ended"
)

// Event is one decoded game event. Every variant resolves to exactly one
// routing subject: the world address whose registered identity decides
// who gets notified.
type Event interface {
	// Kind returns the event variant.
	Kind() Kind
	// RoutingSubject returns the world address the event is about, as a
	// canonical lowercase hex string.
	RoutingSubject() string
	// PublicWorthy reports whether the event should be broadcast to the
	// shared channel even when no recipient is registered. Join/leave
	// events are too noisy to broadcast without a known recipient.
	PublicWorthy() bool
}

// SettleRealm announces a newly settled realm.
type SettleRealm struct {
	ID                 uint32
	EventID            uint32
	EntityID           uint32
	Owner              string
	OwnerName          string
	RealmName          string
	ResourceTypesCount uint8
	Cities             uint8
	Harbors            uint8
	Rivers             uint8
	Regions            uint8
	Wonder             uint8
	Order              uint8
	Position           Position
	Timestamp          uint64
}

func (e SettleRealm) Kind() Kind             { return KindSettleRealm }
func (e SettleRealm) RoutingSubject() string { return e.Owner }
func (e SettleRealm) PublicWorthy() bool     { return true }

// BattleStart announces an attack on a structure or army.
type BattleStart struct {
	ID                   uint32
	EventID              uint32
	BattleEntityID       uint32
	Attacker             string
	AttackerName         string
	AttackerArmyEntityID uint32
	Defender             string
	DefenderName         string
	DefenderArmyEntityID uint32
	DurationLeft         uint64
	Position             Position
	StructureCategory    uint8
}

func (e BattleStart) Kind() Kind             { return KindBattleStart }
func (e BattleStart) RoutingSubject() string { return e.Defender }
func (e BattleStart) PublicWorthy() bool     { return true }

// BattleJoin announces an army joining an ongoing battle.
type BattleJoin struct {
	ID                 uint32
	EventID            uint32
	BattleEntityID     uint32
	Joiner             string
	JoinerName         string
	JoinerArmyEntityID uint32
	JoinerSide         string
	DurationLeft       uint64
	Position           Position
}

func (e BattleJoin) Kind() Kind             { return KindBattleJoin }
func (e BattleJoin) RoutingSubject() string { return e.Joiner }
func (e BattleJoin) PublicWorthy() bool     { return false }

// BattleLeave announces an army leaving an ongoing battle.
type BattleLeave struct {
	ID                 uint32
	EventID            uint32
	BattleEntityID     uint32
	Leaver             string
	LeaverName         string
	LeaverArmyEntityID uint32
	LeaverSide         string
	DurationLeft       uint64
	Position           Position
}

func (e BattleLeave) Kind() Kind             { return KindBattleLeave }
func (e BattleLeave) RoutingSubject() string { return e.Leaver }
func (e BattleLeave) PublicWorthy() bool     { return false }

// BattleClaim announces a structure changing owners after a battle.
type BattleClaim struct {
	ID                  uint32
	EventID             uint32
	StructureEntityID   uint32
	Claimer             string
	ClaimerName         string
	ClaimerArmyEntityID uint32
	PreviousOwner       string
	Position            Position
	StructureCategory   uint8
}

func (e BattleClaim) Kind() Kind             { return KindBattleClaim }
func (e BattleClaim) RoutingSubject() string { return e.PreviousOwner }
func (e BattleClaim) PublicWorthy() bool     { return true }

// BattlePillage announces a structure being pillaged. Resources holds
// the raw decoded list; its first entry is a non-resource sentinel the
// router drops before rendering.
type BattlePillage struct {
	ID                        uint32
	EventID                   uint32
	Pillager                  string
	PillagerName              string
	PillagerArmyEntityID      uint32
	PillagedStructureOwner    string
	PillagedStructureEntityID uint32
	Winner                    string
	Position                  Position
	StructureCategory         uint8
	Resources                 []ResourceAmount
}

func (e BattlePillage) Kind() Kind             { return KindBattlePillage }
func (e BattlePillage) RoutingSubject() string { return e.PillagedStructureOwner }
func (e BattlePillage) PublicWorthy() bool     { return true }

// ConstructionStarted announces hyperstructure construction beginning.
type ConstructionStarted struct {
	ID                uint32
	EventID           uint32
	StructureEntityID uint32
	Owner             string
	OwnerName         string
	Position          Position
	StructureCategory uint8
}

func (e ConstructionStarted) Kind() Kind             { return KindConstructionStarted }
func (e ConstructionStarted) RoutingSubject() string { return e.Owner }
func (e ConstructionStarted) PublicWorthy() bool     { return true }

// ConstructionFinished announces hyperstructure construction completing.
type ConstructionFinished struct {
	ID                uint32
	EventID           uint32
	StructureEntityID uint32
	Owner             string
	OwnerName         string
	Position          Position
	StructureCategory uint8
	Timestamp         uint64
}

func (e ConstructionFinished) Kind() Kind             { return KindConstructionFinished }
func (e ConstructionFinished) RoutingSubject() string { return e.Owner }
func (e ConstructionFinished) PublicWorthy() bool     { return true }

// GameEnded announces the end of the season.
type GameEnded struct {
	ID         uint32
	EventID    uint32
	Winner     string
	WinnerName string
	Timestamp  uint64
}

func (e GameEnded) Kind() Kind             { return KindGameEnded }
func (e GameEnded) RoutingSubject() string { return e.Winner }
func (e GameEnded) PublicWorthy() bool     { return true }
