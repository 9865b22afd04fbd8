// Package testutil provides datasets for tests.
//
// This package is intended for use in tests only.
//
// # Fixture
//
// Fixture returns a small hand-written dataset with known answers:
//
//	ds := testutil.Fixture()
//	st, _ := store.New(ds)
//
// # Random Datasets
//
//	rng := testutil.NewRNG(seed)
//	ds := rng.Dataset(200)
//
// Random datasets draw from a fixed vocabulary so that generated queries hit.
package testutil
