package syntax

import (
	"testing"

	"github.com/haukened/rr-email/internal/email/domain"
)

func BenchmarkValidator_ValidateSimple(b *testing.B) {
	v := newTestValidator(domain.Options{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Validate("simple@example.com")
	}
}

func BenchmarkValidator_ValidateQuoted(b *testing.B) {
	v := newTestValidator(domain.Options{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Validate(`just."actually".right@example.com`)
	}
}

func BenchmarkValidator_ValidateCorpus(b *testing.B) {
	v := newTestValidator(domain.Options{})
	corpus := join(allValid(), invalidDefault)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Validate(corpus[i%len(corpus)])
	}
}

func BenchmarkValidator_Parallel(b *testing.B) {
	v := newTestValidator(domain.Options{})
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			v.Validate("disposablestyleemailwith+symbol@example.com")
		}
	})
}
