// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sigma implements zero-knowledge proofs of knowledge built from Sigma protocols: proofs
// that the prover knows a preimage x with f(x) = y under a group homomorphism f, and OR
// compositions of these proving that an encrypted or committed value is one of a small public
// set of candidates, without revealing which. The algebra the proofs operate on is in package
// algebra, the challenge derivation in package challenge. For now, see preimage_test.go and
// validity_test.go on how to use the library.
package sigma
