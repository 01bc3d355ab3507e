// Package lcsgo is a rule-population engine for Learning Classifier Systems.
//
// The building blocks live in sub-packages:
//
//   - bitfield: growable bit strings used as chromosomes
//   - classifier: rules, the Representation and UpdateAlgorithm contracts
//   - population: macroclassifiers and the ClassifierSet with subsumption
//   - control: population size control strategies
//   - representation/ternary: a ready-made {0,1,#} representation
//   - persistence, blobstore: checkpoints on local disk, MinIO or S3
//   - island: parallel populations exchanging migrants
//
// System ties a representation to its options and checkpoint store.
//
// # Quick Start
//
//	rep := ternary.New(6, 2)
//	sys, _ := lcsgo.New(rep,
//	    lcsgo.WithControlStrategy(&control.WorstFitnessDeletion{Max: 400}),
//	    lcsgo.WithBlobStore(blobstore.NewLocalStore("./checkpoints")),
//	)
//
//	set := sys.NewPopulation()
//	inst := classifier.Instance{Index: 0, Values: []float64{1, 0, 1, 1, 0, 0}}
//	if set.GenerateMatchSet(inst).IsEmpty() {
//	    c := sys.Factory().FromBitField(rep.Cover(inst, 1, 0.33, rng))
//	    set.Add(c, 1, true)
//	}
//
//	_ = sys.Checkpoint(ctx, "gen-0001.lcs", set)
//	name, restored, _ := sys.OpenLatest(ctx)
//
// # Aliasing
//
// Classifiers are shared by pointer. Match sets and filtered sets reference
// the same classifiers as the source set, so fitness or experience updates
// made through one are visible in the other. Numerosity is per set. Core types are not safe for
// concurrent use; run parallel populations with the island package.
package lcsgo
