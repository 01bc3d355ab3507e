// Package island runs several populations in parallel and exchanges rules
// between them along a ring.
//
// Every Island owns its Factory and ClassifierSet; only its own goroutine
// touches them while the Archipelago runs. Rules travel as Migrant values
// and are rebuilt with the receiving island's Factory, so islands never
// share classifiers.
//
//	arch := island.New(island.DefaultOptions())
//	for i := 0; i < 4; i++ {
//	    arch.Add(classifier.NewFactory(rep, classifier.WithIDSource(ids)), population.New())
//	}
//	err := arch.Run(ctx, trainer)
package island
