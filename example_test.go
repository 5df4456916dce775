package annrecall_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/annrecall"
	"github.com/hupe1980/annrecall/distance"
	"github.com/hupe1980/annrecall/model"
)

func Example() {
	ctx := context.Background()

	train, err := annrecall.NewTrainingSet([]model.IdentifiedVector{
		{ID: "a", Vector: []float32{0, 0}},
		{ID: "b", Vector: []float32{1, 0}},
		{ID: "c", Vector: []float32{0, 1}},
		{ID: "d", Vector: []float32{5, 5}},
	})
	if err != nil {
		log.Fatal(err)
	}

	eval, err := annrecall.New(distance.MetricL2, 2)
	if err != nil {
		log.Fatal(err)
	}

	queries := [][]float32{{0.1, 0.1}}

	truth, err := eval.GroundTruth(ctx, train, queries)
	if err != nil {
		log.Fatal(err)
	}

	// Identifier lists as returned by an external approximate search system.
	results := [][]model.ID{{"a", "d"}}

	report, err := eval.Evaluate(ctx, train, queries, truth, results)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("mean recall: %.2f\n", report.Mean)
	// Output:
	// mean recall: 0.50
}
