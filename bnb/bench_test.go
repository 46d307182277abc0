// Package bnb_test: benchmarks for complete searches.
package bnb_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvmip/bnb"
)

// BenchmarkSolve_Knapsack3 measures the 9-node knapsack search.
func BenchmarkSolve_Knapsack3(b *testing.B) {
	var (
		m   = knapsack()
		ctx = context.Background()
	)
	eng, err := bnb.New()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = eng.Solve(ctx, m); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSolve_RandomBinary measures searches on a fixed random model.
func BenchmarkSolve_RandomBinary(b *testing.B) {
	var (
		m   = randomBinary(rand.New(rand.NewSource(7)), 2, 4)
		ctx = context.Background()
	)
	eng, err := bnb.New()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = eng.Solve(ctx, m); err != nil {
			b.Fatal(err)
		}
	}
}
