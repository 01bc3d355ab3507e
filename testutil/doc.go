// Package testutil holds helpers shared by the lcsgo tests.
//
//	rng := testutil.NewRNG(4711)
//	s := rng.BitString(64)       // "0110...", most significant bit first
//	vals := rng.BinaryValues(16) // 0/1 attribute values
package testutil
