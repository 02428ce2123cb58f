package domain

import "strconv"

// structureNames mirrors the game's structure category table, keyed by
// the single-byte discriminant carried on battle and construction events.
var structureNames = map[uint8]string{
	1: "Realm",
	2: "Hyperstructure",
	3: "Bank",
	4: "Fragment Mine",
	5: "Village",
}

// StructureName returns the display name for a structure category.
func StructureName(category uint8) string {
	if name, ok := structureNames[category]; ok {
		return name
	}
	return "Structure #" + strconv.Itoa(int(category))
}
