package renderbench_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
)

func BenchmarkScenarios(b *testing.B) {
	for _, s := range rb.DefaultMatrix() {
		s := s
		b.Run(s.Description("software"), func(b *testing.B) {
			display := newDisplay(b)
			sc := newScenarioContext(b, display, 100)
			d := rb.NewDriver(rb.NewCompositor(display.Backend()))
			d.Reps = 64

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := d.RunScenario(context.Background(), sc, s)
				require.NoError(b, err)
			}
		})
	}
}
