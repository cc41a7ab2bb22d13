package batch_test

import (
	"testing"
	"time"

	"github.com/fwojciec/commpost/batch"
	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("is stable and fixed width", func(t *testing.T) {
		t.Parallel()

		h := batch.ComputeHash("<html></html>")

		assert.Len(t, h, 16)
		assert.Equal(t, h, batch.ComputeHash("<html></html>"))
		assert.NotEqual(t, h, batch.ComputeHash("<html> </html>"))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, batch.FormatBytes(tt.bytes))
	}
}

func TestFormatRate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5.0 posts/s", batch.FormatRate(10, 2*time.Second))
	assert.Equal(t, "3 posts", batch.FormatRate(3, 0))
}
