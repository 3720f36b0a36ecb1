// Package classifier maps stash items onto the category vocabulary used by vendor recipes.
//
// Classification is a pure function of a single item. An item can belong to several
// categories at once (a six-linked rare body armour is a RareBodyArmour, a SixSocket and a
// FullLinkChest); the classifier returns every candidate and leaves the choice to the
// partitioner, which resolves contention through recipe priority.
//
// # Vocabulary
//
// Equipment categories combine a rarity with a gear slot (NormalWeapon1H ... UniqueRing).
// Special categories cover socket recipes (FullLinkChest, FullLinkWeapon, SixSocket,
// RGBLinked), quality recipes (QualityGem, QualityFlask) and map tier bands (WhiteMap,
// YellowMap, RedMap). Unclassified is used only for reporting items without any category.
//
// # Tags
//
// Sub-tags record identification, corruption and the 20% quality threshold. Corrupted
// items never receive a category.
package classifier
