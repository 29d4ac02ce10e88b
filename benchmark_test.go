// FILE: lixenwraith/recorder/benchmark_test.go
package recorder

import (
	"testing"

	"github.com/lixenwraith/recorder/mask"
)

// BenchmarkLog benchmarks plain-text submission
func BenchmarkLog(b *testing.B) {
	r, _ := createTestRecorder(b, func(c *Config) { c.QueueCapacity = 4096 })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Log("benchmark message")
	}
}

// BenchmarkLogJSON benchmarks structured submission, including the deep copy
func BenchmarkLogJSON(b *testing.B) {
	r, _ := createTestRecorder(b, func(c *Config) { c.QueueCapacity = 4096 },
		WithMaskRules(
			mask.Full([]string{"password"}, true, '*'),
			mask.Email([]string{"email"}, true, '*'),
		))

	fields := map[string]any{
		"user_id":  123,
		"email":    "someone@example.com",
		"password": "hunter2",
		"tags":     []any{"a", "b"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.LogJSON(fields)
	}
}

// BenchmarkConcurrentLog benchmarks submission under concurrent load
func BenchmarkConcurrentLog(b *testing.B) {
	r, _ := createTestRecorder(b, func(c *Config) { c.QueueCapacity = 4096 })

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r.Log("concurrent")
		}
	})
}
