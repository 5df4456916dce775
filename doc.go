// Package annrecall measures the recall of approximate nearest-neighbor
// search systems against an exact brute-force reference.
//
// An Evaluator consumes a training set of identified vectors, a query set, a
// distance metric with a neighbor count k, and the identifier lists an
// external approximate search system returned per query. It produces one
// recall score per query plus the overall mean.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	train, _ := annrecall.NewTrainingSet(items)
//	eval, _ := annrecall.New(distance.MetricL2, 10)
//
//	truth, _ := eval.GroundTruth(ctx, train, queries)
//
//	// results come from the external approximate search system,
//	// e.g. via the searcher package.
//	report, _ := eval.Evaluate(ctx, train, queries, truth, results)
//	fmt.Println(report.Mean)
//
// # Scoring
//
// Raw set-intersection recall is too strict against systems that return ties
// or near-ties at the k-th boundary. Instead, each query gets a distance
// threshold (the k-th exact distance plus a small epsilon) and a returned
// identifier counts as a hit when its recomputed exact distance is within
// that threshold. Short result lists are penalized: recall is count/k, not
// count/returned.
//
// The evaluator performs no I/O and holds no state across runs; the
// embedder, searcher, dataset and cmd packages provide the glue for feeding
// it from live systems and files.
package annrecall
