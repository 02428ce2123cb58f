package domain

import "strconv"

// AmountPrecision is the fixed-point scale applied to on-chain resource
// amounts. A wire value of 5000 displays as 5.
const AmountPrecision = 1000

// ResourceAmount is one pillaged resource entry as decoded from the wire.
type ResourceAmount struct {
	ID     uint8
	Amount uint64
}

// resourceNames mirrors the game's resource id table.
var resourceNames = map[uint8]string{
	1:   "Wood",
	2:   "Stone",
	3:   "Coal",
	4:   "Copper",
	5:   "Obsidian",
	6:   "Silver",
	7:   "Ironwood",
	8:   "Cold Iron",
	9:   "Gold",
	10:  "Hartwood",
	11:  "Diamonds",
	12:  "Sapphire",
	13:  "Ruby",
	14:  "Deep Crystal",
	15:  "Ignium",
	16:  "Ethereal Silica",
	17:  "True Ice",
	18:  "Twilight Quartz",
	19:  "Alchemical Silver",
	20:  "Adamantine",
	21:  "Mithral",
	22:  "Dragonhide",
	29:  "Earthenshard",
	249: "Donkey",
	250: "Knight",
	251: "Crossbowman",
	252: "Paladin",
	253: "Lords",
	254: "Wheat",
	255: "Fish",
}

// ResourceName returns the display name for a resource id.
func ResourceName(id uint8) string {
	if name, ok := resourceNames[id]; ok {
		return name
	}
	return "Resource #" + strconv.Itoa(int(id))
}

// DisplayAmount converts a fixed-point wire amount to display units,
// rounding down.
func (r ResourceAmount) DisplayAmount() uint64 {
	return r.Amount / AmountPrecision
}
