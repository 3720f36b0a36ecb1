// Package recipe holds the compiled-in vendor recipe definitions.
//
// A Definition is an ordered list of slots. Each slot accepts any of a list of categories
// (logical OR) and needs Count items; quality slots keep absorbing items until their summed
// quality reaches FillToQuality. Requirements apply to every item of a set (identification,
// item level range, maximum rarity) or to the set as a whole (AnyBelowItemLevel).
//
// The order of All() is the matching priority: earlier recipes claim items first.
package recipe
