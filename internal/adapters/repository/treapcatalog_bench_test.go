package repository

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/okian/draftkit/internal/domain/model"
)

func benchAthletes(b *testing.B, n int) []model.Athlete {
	b.Helper()
	rng := rand.New(rand.NewSource(7))
	out := make([]model.Athlete, n)
	for i := range out {
		out[i] = mustAthlete(b, fmt.Sprintf("Athlete %06d", i), 1+rng.Float64()*60)
	}
	return out
}

func BenchmarkTreapCatalog_Insert(b *testing.B) {
	ctx := context.Background()
	athletes := benchAthletes(b, 10_000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store := NewTreapCatalog(ctx, WithCapacity(len(athletes)))
		for _, a := range athletes {
			if err := store.Insert(ctx, a); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkTreapCatalog_DraftCycle takes an athlete out and puts it back,
// the way a draft add followed by a remove does, and reports latency
// percentiles.
func BenchmarkTreapCatalog_DraftCycle(b *testing.B) {
	ctx := context.Background()
	athletes := benchAthletes(b, 10_000)
	store := NewTreapCatalog(ctx, WithCapacity(len(athletes)))
	for _, a := range athletes {
		if err := store.Insert(ctx, a); err != nil {
			b.Fatal(err)
		}
	}

	latencies := make([]time.Duration, 0, b.N)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a := athletes[i%len(athletes)]
		start := time.Now()
		taken, err := store.Remove(ctx, a.ID)
		if err != nil {
			b.Fatal(err)
		}
		if err := store.Insert(ctx, taken); err != nil {
			b.Fatal(err)
		}
		latencies = append(latencies, time.Since(start))
	}
	b.StopTimer()

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	b.ReportMetric(float64(percentile(latencies, 0.50).Nanoseconds()), "p50-ns")
	b.ReportMetric(float64(percentile(latencies, 0.99).Nanoseconds()), "p99-ns")
}

func BenchmarkTreapCatalog_Ascending(b *testing.B) {
	ctx := context.Background()
	for _, n := range []int{500, 5_000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			store := NewTreapCatalog(ctx, WithCapacity(n))
			for _, a := range benchAthletes(b, n) {
				if err := store.Insert(ctx, a); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if got := store.Ascending(ctx); len(got) != n {
					b.Fatalf("got %d athletes", len(got))
				}
			}
		})
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
