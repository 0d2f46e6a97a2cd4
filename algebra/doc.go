// Package algebra contains the algebraic spaces, elements and functions that proofs are built on.
//
// A Space is a finite set with a group operation: integers modulo n (ZMod), the prime order
// subgroup of Z_p^* (GStarMod), the NIST P-256 curve (ECGroup) and products of these
// (ProductSpace). Elements are immutable; every operation returns a new element. Applying an
// element of one space to an element of another is a programming error and panics.
//
// A Function maps the elements of its domain into its codomain. The functions used as proof
// functions are homomorphisms: f(a.Apply(b)) is equivalent to f(a).Apply(f(b)).
package algebra
