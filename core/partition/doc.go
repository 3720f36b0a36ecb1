// Package partition assigns stash items to vendor recipe sets.
//
// Match walks the recipes in priority order. For each recipe it repeatedly assembles one
// set by filling every slot with the first unclaimed admissible item, in tie-break order
// (lower item level, then stash position, then base type name, then id). A complete set
// is committed and the recipe is retried; the first slot that cannot be filled moves the
// matcher on to the next recipe. Items never claimed are leftovers.
//
// The result is greedy by priority, not a global optimum across recipes. Earlier recipes
// are the higher-value ones, so they are satisfied first.
//
// Match is a pure function of its inputs. The claimed state is local to one call, input
// items are never modified, and identical input always produces identical output.
//
// Malformed records (see item.Item.Validate) and records repeating an id are reported as
// Warnings and kept as leftovers. A broken internal invariant (an item claimed twice, an
// item lost, a category outside the classifier vocabulary) aborts with ErrInvariant.
package partition
