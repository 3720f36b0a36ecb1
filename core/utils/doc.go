// Package utils holds loose value conversions for decoded JSON, used where stash
// documents mix strings and numbers in the same array.
package utils
