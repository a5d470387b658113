// Package dll is a small model building toolkit around restricted
// boltzmann machines: minibatch handling, an epoch training loop and
// pluggable output encoders over the trainers in the cd package.
package dll

import (
	"github.com/10183308/dll/rbm"
)

// Trainer trains one minibatch against a model and reports the
// reconstruction error. Both cd.Trainer and cd.PersistentTrainer satisfy
// it.
type Trainer interface {
	TrainBatch(batch [][]float32, m *rbm.RBM) (float32, error)
}

// OutputEncoder consumes the model once per epoch. An example encoder is
// the filters GIF encoder. Another example would be a checkpointer.
type OutputEncoder interface {
	Encode(m *rbm.RBM, epoch int, reconErr float32) error
	Flush() error
}

// TrainConf configures the epoch loop.
type TrainConf struct {
	Epochs    int
	BatchSize int
	Shuffle   bool
	Seed      int64

	Encoder OutputEncoder // optional
}

func DefaultTrainConf() TrainConf {
	return TrainConf{
		Epochs:    10,
		BatchSize: 64,
		Shuffle:   true,
		Seed:      1337,
	}
}

func (conf TrainConf) IsValid() bool {
	return conf.Epochs >= 1 && conf.BatchSize >= 1
}
