package dll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var batchSplits = []struct {
	samples, size int
	want          []int // batch lengths
}{
	{0, 4, nil},
	{1, 4, []int{1}},
	{4, 4, []int{4}},
	{5, 4, []int{4, 1}},
	{10, 4, []int{4, 4, 2}},
	{3, 1, []int{1, 1, 1}},
	{3, 0, nil},
}

func TestBatches(t *testing.T) {
	for _, c := range batchSplits {
		data := make([][]float32, c.samples)
		for i := range data {
			data[i] = []float32{float32(i)}
		}
		batches := Batches(data, c.size)
		if len(batches) != len(c.want) {
			t.Errorf("Expected %d batches of %d samples at size %d. Got %d instead",
				len(c.want), c.samples, c.size, len(batches))
			continue
		}
		var seen int
		for i, b := range batches {
			if len(b) != c.want[i] {
				t.Errorf("Expected batch %d to have %d samples. Got %d instead", i, c.want[i], len(b))
			}
			for _, sample := range b {
				if sample[0] != float32(seen) {
					t.Errorf("Batches must preserve sample order. Expected %v, got %v", seen, sample[0])
				}
				seen++
			}
		}
	}
}

func TestBatchesAlias(t *testing.T) {
	data := [][]float32{{1}, {2}, {3}}
	batches := Batches(data, 2)
	batches[0][0][0] = 9
	assert.Equal(t, float32(9), data[0][0], "batches are windows, not copies")
}

func TestBinarize(t *testing.T) {
	data := [][]float32{
		{0.1, 0.6, 0.5},
		{0.9, 0, 1},
	}
	Binarize(data, 0.5)
	assert.Equal(t, [][]float32{{0, 1, 0}, {1, 0, 1}}, data)
}
