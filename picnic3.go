//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package picnic3 is the public entry point to the LowMC/MPC core
// behind the Picnic3 (KKW) signature scheme: a closed registry of
// parameter sets, each resolving once to a CPU-feature-selected
// bitvec backend plus the collaborator functions a signer or verifier
// drives: plain LowMC encryption and the online round driver, which
// runs the MPC S-box simulator every round. The Aux-phase handle is
// present on the Descriptor but always nil.
package picnic3

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/markkurossi/picnic3lowmc/internal/bitvec"
	"github.com/markkurossi/picnic3lowmc/internal/lowmc"
	"github.com/markkurossi/picnic3lowmc/internal/mpcsbox"
	"github.com/markkurossi/picnic3lowmc/internal/tape"
)

// ParameterSet names one of the three core full-S-box Picnic3
// instances. Non-core variants (partial-S-box LowMC, ZKB++) are a
// named Non-goal and are not represented here.
type ParameterSet int

// The closed enumeration of supported parameter sets.
const (
	Picnic3_L1 ParameterSet = iota
	Picnic3_L3
	Picnic3_L5
)

// String renders id for diagnostics.
func (id ParameterSet) String() string {
	switch id {
	case Picnic3_L1:
		return "Picnic3_L1"
	case Picnic3_L3:
		return "Picnic3_L3"
	case Picnic3_L5:
		return "Picnic3_L5"
	default:
		return fmt.Sprintf("ParameterSet(%d)", int(id))
	}
}

var (
	// ErrUnknownParameterSet is returned by Get for any id outside the
	// closed ParameterSet enumeration.
	ErrUnknownParameterSet = errors.New("picnic3: unknown parameter set")

	// ErrNoBackend names the condition of a host with no usable bitvec
	// backend. selectBackend always falls back to the portable
	// scalar64 backend, so no code path in this package returns it.
	ErrNoBackend = errors.New("picnic3: no bitvec backend available")
)

// Descriptor is the resolved, immutable handle for one parameter set:
// its LowMC parameters, generated constants, selected bitvec backend,
// and its collaborator handles (LowmcPlain and LowmcSimulateOnline
// resolved, LowmcComputeAux always nil).
// Digest/seed sizing and round-count bookkeeping from the reference's
// instance table are carried too, even though the outer signature
// encode/decode path that would consume them is out of scope.
type Descriptor struct {
	ID ParameterSet

	Params    lowmc.Parameters
	Constants *lowmc.Constants
	Ops       bitvec.Ops

	DigestSize      int
	SeedSize        int
	NumRounds       int
	NumOpenedRounds int
	NumMPCParties   int

	LowmcPlain          func(key, plaintext bitvecVector) bitvecVector
	LowmcSimulateOnline func(keyShares *[tape.NumParties]bitvecVector, plaintext bitvecVector, plaintextParty int, tapes *tape.RandomTapeSet, msgs *tape.MessageSet) [tape.NumParties]bitvecVector

	// LowmcComputeAux is always nil. The reference registry resolves a
	// third handle here for the KKW Aux phase that derives consistent
	// (input_mask, and_helper) tape pairs across all 16 parties before
	// signing. That derivation is an external preprocessing
	// collaborator this module does not implement (see DESIGN.md); the
	// field is kept on Descriptor so its shape matches the reference
	// registry, with a nil handle rather than a silently missing one.
	LowmcComputeAux func(tapes *tape.RandomTapeSet) error
}

// bitvecVector is a local alias kept only so Descriptor's function
// field signatures read naturally; it is exactly bitvec.Vector.
type bitvecVector = bitvec.Vector

// instance bundles the fixed, non-generated bookkeeping fields for
// one parameter set — the part of the reference's instances[] table
// that is not itself a function of (N,K,R,M). Mirrors
// original_source/picnic_instances.c's per-instance row for the three
// KKW/Picnic3 full-S-box entries; the partial-S-box/ZKB++ rows of
// that table are a named Non-goal and are not ported.
type instance struct {
	params          lowmc.Parameters
	digestSize      int
	seedSize        int
	numRounds       int
	numOpenedRounds int
}

var instances = map[ParameterSet]instance{
	Picnic3_L1: {params: lowmc.L1, digestSize: 32, seedSize: 16, numRounds: 250, numOpenedRounds: 36},
	Picnic3_L3: {params: lowmc.L3, digestSize: 48, seedSize: 24, numRounds: 419, numOpenedRounds: 52},
	Picnic3_L5: {params: lowmc.L5, digestSize: 64, seedSize: 32, numRounds: 601, numOpenedRounds: 68},
}

var (
	resolveOnce sync.Once
	registry    map[ParameterSet]*Descriptor
	registryErr error
)

// resolve builds every Descriptor exactly once, selecting the widest
// available bitvec backend from CPU feature flags. All three
// parameter sets share the same backend choice: the simulator never
// mixes backends within a single signing/verification call, and the
// feature probe is process-wide, not per-parameter-set.
func resolve() {
	ops := selectBackend()

	registry = make(map[ParameterSet]*Descriptor, len(instances))
	for id, inst := range instances {
		constants, err := lowmc.Generate(inst.params)
		if err != nil {
			registryErr = fmt.Errorf("picnic3: generating constants for %s: %w", id, err)
			return
		}

		c := constants
		params := inst.params
		registry[id] = &Descriptor{
			ID:              id,
			Params:          inst.params,
			Constants:       constants,
			Ops:             ops,
			DigestSize:      inst.digestSize,
			SeedSize:        inst.seedSize,
			NumRounds:       inst.numRounds,
			NumOpenedRounds: inst.numOpenedRounds,
			NumMPCParties:   tape.NumParties,
			LowmcPlain: func(key, plaintext bitvec.Vector) bitvec.Vector {
				return lowmc.Encrypt(c, ops, key, plaintext)
			},
			LowmcSimulateOnline: func(keyShares *[tape.NumParties]bitvec.Vector, plaintext bitvec.Vector, plaintextParty int, tapes *tape.RandomTapeSet, msgs *tape.MessageSet) [tape.NumParties]bitvec.Vector {
				return mpcsbox.SimulateOnline(params, c, ops, keyShares, plaintext, plaintextParty, tapes, msgs)
			},
		}
	}
}

// selectBackend picks the widest bitvec backend the running CPU
// supports, analogous to the reference's load-time dispatch over
// SSE2/AVX2/NEON function-pointer tables. Go has no portable compiler
// intrinsic for 128-/256-bit lane SIMD without per-architecture
// assembly (out of scope for a semantics-preserving rewrite; see
// DESIGN.md), so simd128/simd256 here are lane-width stand-ins that
// are always available — the feature probe still runs so the
// selection genuinely follows what the hardware reports, the way the
// reference's dispatcher does, even though every branch below is
// reachable on any host.
func selectBackend() bitvec.Ops {
	switch {
	case cpu.X86.HasAVX2:
		return bitvec.Simd256
	case cpu.X86.HasSSE2, cpu.ARM64.HasASIMD:
		return bitvec.Simd128
	default:
		return bitvec.Scalar64
	}
}

// Get resolves parameter set id to its Descriptor, building the
// entire registry on the first call (idempotent under concurrent
// callers via sync.Once) and returning the cached Descriptor on every
// subsequent call.
func Get(id ParameterSet) (*Descriptor, error) {
	resolveOnce.Do(resolve)
	if registryErr != nil {
		return nil, registryErr
	}
	d, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParameterSet, id)
	}
	return d, nil
}
