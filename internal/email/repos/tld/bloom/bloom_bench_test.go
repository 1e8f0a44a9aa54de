package bloom

import (
	"fmt"
	"testing"
)

func benchMakeLabels(n int, prefix string) [][]byte {
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = []byte(fmt.Sprintf("%s%05d", prefix, i))
	}
	return out
}

// Benchmark positive and negative lookups on a filter holding 1,000 labels.
func BenchmarkBloom_Positive(b *testing.B) {
	const n = 1000
	f := NewFactory()
	bf := f.New(n, 0.01)
	keys := benchMakeLabels(n, "bench")
	for _, k := range keys {
		bf.Add(k)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bf.MightContain(keys[i%len(keys)])
	}
}

func BenchmarkBloom_Negative(b *testing.B) {
	const n = 1000
	f := NewFactory()
	bf := f.New(n, 0.01)
	// populate with a separate set
	present := benchMakeLabels(n, "present")
	for _, k := range present {
		bf.Add(k)
	}
	// query a disjoint set
	absent := benchMakeLabels(n, "absent")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bf.MightContain(absent[i%len(absent)])
	}
}

// BenchmarkBloom_FalsePositiveRate measures the observed false positive rate
// by querying a disjoint set and reporting fp_count and fp_percent metrics.
func BenchmarkBloom_FalsePositiveRate(b *testing.B) {
	const n = 1000
	const p = 0.01
	const trials = 100_000

	f := NewFactory()
	bf := f.New(n, p)
	present := benchMakeLabels(n, "fprin")
	for _, k := range present {
		bf.Add(k)
	}
	absent := benchMakeLabels(trials, "fprout")

	b.ReportAllocs()
	b.ResetTimer()
	fp := 0
	for i := 0; i < trials; i++ {
		if bf.MightContain(absent[i]) {
			fp++
		}
	}
	b.StopTimer()
	rate := float64(fp) / float64(trials)
	b.ReportMetric(float64(fp), "fp_count")
	b.ReportMetric(rate*100, "fp_percent")
}
