package cd

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"

	"github.com/10183308/dll/rbm"
)

// base holds the gradient accumulators plus the optional momentum and
// sparsity state shared by the CD-k and PCD-k trainers.
type base struct {
	wGrad  []float32 // Visible×Hidden, row-major
	vbGrad []float32
	hbGrad []float32

	// momentum buffers; nil unless the model enables momentum
	wInc, aInc, bInc []float32

	// running estimate of the mean hidden activation probability
	qOld, qBatch, qT float32
}

func newBase(m *rbm.RBM) base {
	t := base{
		wGrad:  make([]float32, m.Visible*m.Hidden),
		vbGrad: make([]float32, m.Visible),
		hbGrad: make([]float32, m.Hidden),
	}
	if m.Momentum {
		t.wInc = make([]float32, m.Visible*m.Hidden)
		t.aInc = make([]float32, m.Visible)
		t.bInc = make([]float32, m.Hidden)
	}
	return t
}

// applyGradients folds the normalized batch gradients into the parameters
// of m: momentum blending, sparsity penalty and weight decay first, then
// the in-place update and a stability check. The order matters, later
// terms read the earlier ones.
func (t *base) applyGradients(m *rbm.RBM) error {
	lr := m.LearningRate

	if m.Momentum {
		mom := m.MomentumCoef
		vecf32.Scale(t.wInc, mom)
		vecf32.IncrScale(t.wGrad, 1-mom, t.wInc)
		vecf32.Scale(t.aInc, mom)
		vecf32.IncrScale(t.vbGrad, 1-mom, t.aInc)
		vecf32.Scale(t.bInc, mom)
		vecf32.IncrScale(t.hbGrad, 1-mom, t.bInc)
	}

	// final gradients: the momentum buffers when enabled, the raw
	// accumulators otherwise
	wF, aF, bF := t.wGrad, t.vbGrad, t.hbGrad
	if m.Momentum {
		wF, aF, bF = t.wInc, t.aInc, t.bInc
	}

	// penalty applied to the weights and the hidden biases
	var hPenalty float32
	if m.Sparsity {
		t.qT = m.DecayRate*t.qOld + (1-m.DecayRate)*t.qBatch
		hPenalty = m.SparsityCost * (t.qT - m.SparsityTarget)
	}

	cost := m.WeightCost
	w := m.Weights()
	switch m.Decay {
	case rbm.L1, rbm.L1Full:
		for i, v := range w {
			w[i] = v + lr*(wF[i]-cost*math32.Abs(v)-hPenalty)
		}
	case rbm.L2, rbm.L2Full:
		for i, v := range w {
			w[i] = v + lr*(wF[i]-cost*v-hPenalty)
		}
	default:
		for i, v := range w {
			w[i] = v + lr*(wF[i]-hPenalty)
		}
	}

	// biases only decay under the full variants
	b := m.HiddenBias()
	switch m.Decay {
	case rbm.L1Full:
		for j, v := range b {
			b[j] = v + lr*(bF[j]-cost*math32.Abs(v)-hPenalty)
		}
	case rbm.L2Full:
		for j, v := range b {
			b[j] = v + lr*(bF[j]-cost*v-hPenalty)
		}
	default:
		for j, v := range b {
			b[j] = v + lr*(bF[j]-hPenalty)
		}
	}

	a := m.VisibleBias()
	switch m.Decay {
	case rbm.L1Full:
		for i, v := range a {
			a[i] = v + lr*(aF[i]-cost*math32.Abs(v))
		}
	case rbm.L2Full:
		for i, v := range a {
			a[i] = v + lr*(aF[i]-cost*v)
		}
	default:
		for i, v := range a {
			a[i] = v + lr*aF[i]
		}
	}

	if m.Sparsity {
		t.qOld = t.qT // advance the running estimate for the next batch
	}

	return m.Check()
}

// run drives one minibatch: k Gibbs steps per sample, gradient
// accumulation, normalization and the parameter update. seed supplies the
// hidden state the first visible reconstruction of a slot starts from;
// commit, when non-nil, is called with the end-of-chain state still in
// H2a/H2s.
func (t *base) run(batch [][]float32, m *rbm.RBM, k int, seed func(slot int) (ha, hs []float32), commit func(slot int)) (float32, error) {
	if len(batch) == 0 {
		return 0, errors.New("empty batch")
	}
	if len(batch) > m.BatchSize {
		return 0, errors.Errorf("batch of %d samples exceeds the configured capacity %d", len(batch), m.BatchSize)
	}
	for i := range batch {
		if len(batch[i]) != m.Visible {
			return 0, errors.Errorf("sample %d has %d values, want %d visible units", i, len(batch[i]), m.Visible)
		}
	}

	n := float32(len(batch))
	zero(t.wGrad, t.vbGrad, t.hbGrad)
	if m.Sparsity {
		t.qBatch = 0
	}

	for slot, sample := range batch {
		copy(m.V1, sample)

		// positive phase
		m.ActivateHidden(m.H1a, m.H1s, m.V1, m.V1)

		// negative phase: the first reconstruction starts from the seed,
		// the remaining k-1 steps walk the chain
		ha, hs := seed(slot)
		m.ActivateVisible(ha, hs, m.V2a, m.V2s)
		m.ActivateHidden(m.H2a, m.H2s, m.V2a, m.V2s)
		for step := 1; step < k; step++ {
			m.ActivateVisible(m.H2a, m.H2s, m.V2a, m.V2s)
			m.ActivateHidden(m.H2a, m.H2s, m.V2a, m.V2s)
		}

		if commit != nil {
			commit(slot)
		}

		// contrastive statistics: the outer product difference between the
		// data-driven and the model-driven phase
		it := rbm.MakeIterator(t.wGrad, m.Visible, m.Hidden)
		for i := 0; i < m.Visible; i++ {
			row := it[i]
			v1 := m.V1[i]
			v2 := m.V2a[i]
			for j := 0; j < m.Hidden; j++ {
				row[j] += m.H1a[j]*v1 - m.H2a[j]*v2
			}
		}
		rbm.ReturnIterator(m.Visible, m.Hidden, it)

		vecf32.IncrSub(m.V1, m.V2a, t.vbGrad)
		vecf32.IncrSub(m.H1a, m.H2a, t.hbGrad)

		if m.Sparsity {
			t.qBatch += vecf32.Sum(m.H2a)
		}
	}

	// keep only the mean of the gradients
	vecf32.ScaleInv(t.wGrad, n)
	vecf32.ScaleInv(t.vbGrad, n)
	vecf32.ScaleInv(t.hbGrad, n)
	if m.Sparsity {
		t.qBatch /= n * float32(m.Hidden)
	}

	if !rbm.Finite(t.wGrad, t.vbGrad, t.hbGrad) {
		return 0, errors.Wrap(rbm.ErrUnstable, "batch gradients")
	}

	if err := t.applyGradients(m); err != nil {
		return 0, err
	}

	// RMS of the visible bias gradient, a cheap proxy for how far the
	// reconstructions sit from the inputs
	var sq float32
	for _, v := range t.vbGrad {
		sq += v * v
	}
	return math32.Sqrt(sq / float32(m.Visible)), nil
}

func zero(xs ...[]float32) {
	for _, x := range xs {
		for i := range x {
			x[i] = 0
		}
	}
}
