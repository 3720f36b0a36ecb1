package stash

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"stash-recipes/core/item"
	"stash-recipes/core/utils"
)

// Document is one stash-tab API response.
type Document struct {
	NumTabs    int       `json:"numTabs"`
	QuadLayout bool      `json:"quadLayout"`
	Items      []RawItem `json:"items"`
}

// RawItem is one entry of a stash-tab document.
type RawItem struct {
	ID          string      `json:"id"`
	W           int         `json:"w"`
	H           int         `json:"h"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
	ItemLevel   int         `json:"ilvl"`
	FrameType   *int        `json:"frameType"`
	Icon        string      `json:"icon"`
	Name        string      `json:"name"`
	TypeLine    string      `json:"typeLine"`
	BaseType    string      `json:"baseType"`
	Identified  bool        `json:"identified"`
	Corrupted   bool        `json:"corrupted"`
	StackSize   int         `json:"stackSize"`
	Sockets     []RawSocket `json:"sockets"`
	Properties  []Property  `json:"properties"`
	InventoryID string      `json:"inventoryId"`
}

// RawSocket is a socket entry.
type RawSocket struct {
	Group  int    `json:"group"`
	Colour string `json:"sColour"`
}

// Property is a displayed item property. Values holds [text, style] pairs.
type Property struct {
	Name   string  `json:"name"`
	Values [][]any `json:"values"`
}

// Frame types.
const (
	FrameNormal   = 0
	FrameMagic    = 1
	FrameRare     = 2
	FrameUnique   = 3
	FrameGem      = 4
	FrameCurrency = 5
)

var iconPattern = regexp.MustCompile(`/2DItems/(.+?)/(.+?)(\.png|/)`)

var iconClasses = map[string]item.Class{
	"Armours/Boots":          item.ClassBoots,
	"Armours/Helmets":        item.ClassHelmet,
	"Armours/Gloves":         item.ClassGloves,
	"Armours/BodyArmours":    item.ClassBodyArmour,
	"Armours/Shields":        item.ClassShield,
	"Weapons/OneHandWeapons": item.ClassOneHandWeapon,
	"Weapons/TwoHandWeapons": item.ClassTwoHandWeapon,
	"Weapons/Bows":           item.ClassTwoHandWeapon,
	"Weapons/Quivers":        item.ClassQuiver,
	"Quivers":                item.ClassQuiver,
	"Amulets":                item.ClassAmulet,
	"Rings":                  item.ClassRing,
	"Belts":                  item.ClassBelt,
	"Flasks":                 item.ClassFlask,
	"Maps":                   item.ClassMap,
	"Gems":                   item.ClassGem,
	"Jewels":                 item.ClassJewel,
	"Currency":               item.ClassCurrency,
}

// ClassFromIcon derives the item class from an icon URL. It returns "" when the URL
// does not contain a 2DItems path.
func ClassFromIcon(icon string) item.Class {
	m := iconPattern.FindStringSubmatch(icon)
	if m == nil {
		return ""
	}
	if c, ok := iconClasses[m[1]+"/"+m[2]]; ok {
		return c
	}
	if c, ok := iconClasses[m[1]]; ok {
		return c
	}
	return item.ClassOther
}

// RarityFromFrame maps a frame type to a rarity. Unknown frames map to "".
func RarityFromFrame(frame int) item.Rarity {
	switch frame {
	case FrameNormal, FrameGem, FrameCurrency:
		return item.RarityNormal
	case FrameMagic:
		return item.RarityMagic
	case FrameRare:
		return item.RarityRare
	case FrameUnique:
		return item.RarityUnique
	default:
		return ""
	}
}

// Decode reads a stash-tab document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode stash document: %w", err)
	}
	return &doc, nil
}

// Parse decodes a document and converts its items, placing them on tab.
func Parse(r io.Reader, tab int) ([]item.Item, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return doc.ToItems(tab), nil
}

// ToItems converts the document entries.
func (d *Document) ToItems(tab int) []item.Item {
	out := make([]item.Item, 0, len(d.Items))
	for _, raw := range d.Items {
		out = append(out, raw.ToItem(tab))
	}
	return out
}

// ToItem converts one entry. Entries without an id get one derived from their position.
func (r RawItem) ToItem(tab int) item.Item {
	it := item.Item{
		ID:         r.ID,
		Position:   item.Position{Tab: tab, X: r.X, Y: r.Y, W: r.W, H: r.H},
		BaseType:   r.BaseType,
		Name:       r.Name,
		Class:      ClassFromIcon(r.Icon),
		Identified: r.Identified,
		ItemLevel:  r.ItemLevel,
		Corrupted:  r.Corrupted,
		StackSize:  r.StackSize,
	}
	if it.ID == "" {
		it.ID = fmt.Sprintf("t%d-%d-%d", tab, r.X, r.Y)
	}
	if it.BaseType == "" {
		it.BaseType = r.TypeLine
	}
	if r.FrameType != nil {
		it.Rarity = RarityFromFrame(*r.FrameType)
	}

	for _, s := range r.Sockets {
		it.Sockets = append(it.Sockets, item.Socket{Group: s.Group, Colour: item.Colour(s.Colour)})
	}

	for _, p := range r.Properties {
		switch p.Name {
		case "Quality":
			it.Quality = firstNumber(p)
		case "Map Tier":
			it.MapTier = firstNumber(p)
			it.Class = item.ClassMap
		}
	}
	return it
}

// firstNumber extracts the leading integer of the first property value ("+17%" -> 17).
func firstNumber(p Property) int {
	if len(p.Values) == 0 || len(p.Values[0]) == 0 {
		return 0
	}
	text := utils.ToString(p.Values[0][0])
	text = strings.TrimSpace(strings.TrimPrefix(text, "+"))
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return utils.ToInt(p.Values[0][0])
	}
	n, _ := strconv.Atoi(text[:end])
	return n
}
