//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package lowmc implements the full-S-box LowMC block cipher
// primitives that back the Picnic3 (KKW) signature scheme: the
// parameter tuples, the deterministic constant-table generator, and
// plain (non-MPC) forward encryption used both directly and as the
// reference the MPC simulator must reproduce.
package lowmc

import "fmt"

// Parameters names a LowMC instance: N-bit blocks and keys, R
// full-S-box rounds, and M parallel 3-bit S-boxes per round (3*M <=
// N). Picnic3 only uses the full-S-box variant, never the
// partial-S-box LowMC instances used by earlier Picnic versions.
type Parameters struct {
	N int
	K int
	R int
	M int
}

// The three full-S-box Picnic3 parameter tuples (L1, L3, L5).
var (
	L1 = Parameters{N: 129, K: 129, R: 4, M: 43}
	L3 = Parameters{N: 192, K: 192, R: 4, M: 64}
	L5 = Parameters{N: 255, K: 255, R: 4, M: 85}
)

// Validate reports whether p is one of the supported full-S-box
// Picnic3 tuples.
func (p Parameters) Validate() error {
	switch p {
	case L1, L3, L5:
		return nil
	default:
		return fmt.Errorf("lowmc: unsupported parameters %+v", p)
	}
}

// String renders p as "N_K_R_M", matching the reference's
// lowmc_<n>_<k>_<r> naming convention (M is implied by N for the
// full-S-box family, so it is included here for clarity only).
func (p Parameters) String() string {
	return fmt.Sprintf("%d_%d_%d_%d", p.N, p.K, p.R, p.M)
}
