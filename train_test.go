package dll

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/10183308/dll/cd"
	"github.com/10183308/dll/rbm"
)

// dummyTrainer reports a fixed reconstruction error and counts its calls.
type dummyTrainer struct {
	calls    int
	reconErr float32
	err      error
}

func (d *dummyTrainer) TrainBatch(batch [][]float32, m *rbm.RBM) (float32, error) {
	d.calls++
	return d.reconErr, d.err
}

// recordingEncoder remembers the epochs it saw.
type recordingEncoder struct {
	epochs  []int
	flushed bool
}

func (r *recordingEncoder) Encode(m *rbm.RBM, epoch int, reconErr float32) error {
	r.epochs = append(r.epochs, epoch)
	return nil
}

func (r *recordingEncoder) Flush() error {
	r.flushed = true
	return nil
}

func testData(n, dims int) [][]float32 {
	data := make([][]float32, n)
	for i := range data {
		data[i] = make([]float32, dims)
		for j := range data[i] {
			data[i][j] = float32((i + j) % 2)
		}
	}
	return data
}

func TestTrain(t *testing.T) {
	assert := assert.New(t)
	m, err := rbm.New(rbm.DefaultConf(3, 2))
	if err != nil {
		t.Fatal(err)
	}

	d := &dummyTrainer{reconErr: 0.5}
	enc := &recordingEncoder{}
	conf := TrainConf{Epochs: 2, BatchSize: 4, Shuffle: true, Seed: 1337, Encoder: enc}

	hist, err := Train(d, m, testData(10, 3), conf)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	assert.Equal(6, d.calls, "10 samples at batch size 4 is 3 batches per epoch")
	assert.Equal([]float32{0.5, 0.5}, hist.Errors)
	assert.Equal(float32(0.5), hist.Last())
	assert.Equal([]int{0, 1}, enc.epochs)
	assert.True(enc.flushed)
}

func TestTrainPropagatesErrors(t *testing.T) {
	m, err := rbm.New(rbm.DefaultConf(3, 2))
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	d := &dummyTrainer{err: boom}
	_, err = Train(d, m, testData(4, 3), TrainConf{Epochs: 1, BatchSize: 4})
	assert.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
}

func TestTrainValidation(t *testing.T) {
	m, err := rbm.New(rbm.DefaultConf(3, 2))
	if err != nil {
		t.Fatal(err)
	}
	d := &dummyTrainer{}

	if _, err := Train(d, m, testData(4, 3), TrainConf{}); err == nil {
		t.Error("an invalid conf should not train")
	}
	conf := TrainConf{Epochs: 1, BatchSize: m.BatchSize + 1}
	if _, err := Train(d, m, testData(4, 3), conf); err == nil {
		t.Error("a batch size beyond the model capacity should not train")
	}
}

func TestTrainCD(t *testing.T) {
	conf := rbm.DefaultConf(4, 3)
	conf.BatchSize = 4
	conf.MeanField = true
	m, err := rbm.New(conf)
	if err != nil {
		t.Fatal(err)
	}
	trainer, err := cd.New(1, m)
	if err != nil {
		t.Fatal(err)
	}

	tc := TrainConf{Epochs: 3, BatchSize: 4, Shuffle: true, Seed: 1337}
	hist, err := Train(trainer, m, testData(8, 4), tc)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Len(t, hist.Errors, 3)
	for i, e := range hist.Errors {
		if e < 0 {
			t.Errorf("epoch %d has a negative reconstruction error %v", i, e)
		}
	}
}

func TestHistoryLastEmpty(t *testing.T) {
	var h History
	assert.Equal(t, float32(0), h.Last())
}
