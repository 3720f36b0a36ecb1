// Package stash turns stash-tab API documents into item records.
//
// A document is the JSON body returned for one stash tab: an items array plus layout
// flags. Parse maps each entry onto item.Item:
//
//   - the item class comes from the icon path (/2DItems/<Group>/<Sub>/...),
//   - rarity comes from frameType (0 normal, 1 magic, 2 rare, 3 unique; gems and currency
//     count as normal),
//   - quality and map tier come from the properties list,
//   - sockets keep their link group and colour.
//
// Entries the parser cannot place keep empty fields; the matcher reports them as
// malformed instead of failing the snapshot.
//
// # Sources
//
// A Source returns the items of a whole snapshot. FileSource reads local documents and
// ObjectSource reads documents from the bucket. Both load their pages concurrently and
// return only once every page is in, so matching always sees the full snapshot.
package stash
