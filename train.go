package dll

import (
	"log"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/10183308/dll/rbm"
)

// Train drives t over data for conf.Epochs epochs, reshuffling the samples
// between epochs when conf.Shuffle is set, and returns the per-epoch mean
// reconstruction errors.
//
// Shuffling and persistent trainers do not mix: a cd.PersistentTrainer
// needs a stable slot-to-sample mapping, so train it with Shuffle off.
func Train(t Trainer, m *rbm.RBM, data [][]float32, conf TrainConf) (*History, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid training configuration %+v", conf)
	}
	if conf.BatchSize > m.BatchSize {
		return nil, errors.Errorf("training batch size %d exceeds the model capacity %d", conf.BatchSize, m.BatchSize)
	}

	r := rand.New(rand.NewSource(conf.Seed))
	hist := &History{}
	for epoch := 0; epoch < conf.Epochs; epoch++ {
		if conf.Shuffle {
			shuffle(data, r)
		}

		var total float32
		batches := Batches(data, conf.BatchSize)
		for _, batch := range batches {
			reconErr, err := t.TrainBatch(batch, m)
			if err != nil {
				return hist, errors.Wrapf(err, "epoch %d", epoch)
			}
			total += reconErr
		}
		mean := total / float32(len(batches))
		hist.append(mean)
		log.Printf("Epoch %d\terror %.5f", epoch, mean)

		if conf.Encoder != nil {
			if err := conf.Encoder.Encode(m, epoch, mean); err != nil {
				return hist, errors.Wrapf(err, "encoding epoch %d", epoch)
			}
		}
	}
	if conf.Encoder != nil {
		if err := conf.Encoder.Flush(); err != nil {
			return hist, errors.Wrap(err, "flushing the output encoder")
		}
	}
	return hist, nil
}

func shuffle(data [][]float32, r *rand.Rand) {
	for i := len(data) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		data[i], data[j] = data[j], data[i]
	}
}
