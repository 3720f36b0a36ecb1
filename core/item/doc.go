// Package item defines the stash item record consumed by the recipe engine.
//
// An Item is an immutable value read from a stash snapshot. It carries everything the
// classifier needs: rarity, item class, quality, sockets and link groups, identification,
// item level, corruption, map tier and stack size, plus the stash position used for
// deterministic tie-breaking.
//
// # Validation
//
// Snapshots coming from the stash collaborator may contain incomplete records. Validate
// reports them with an error wrapping ErrMalformed so callers can exclude the item and
// surface a warning without failing the whole run.
//
// # Usage
//
//	it := item.Item{ID: "a1", Rarity: item.RarityRare, Class: item.ClassRing, ItemLevel: 70}
//	if err := it.Validate(); err != nil {
//	    // treat as leftover
//	}
package item
