package rbm

import (
	"github.com/chewxy/math32"
	rng "github.com/leesper/go_rng"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ErrUnstable is returned when a NaN or Inf is found in a numeric buffer.
// Training cannot continue past it: a corrupted parameter set invalidates
// every subsequent update.
var ErrUnstable = errors.New("non-finite value detected")

// RBM is a restricted boltzmann machine: a bipartite undirected model with
// Visible×Hidden weights W, visible biases A and hidden biases B.
//
// The scratch vectors V1..H2s hold a single Gibbs chain and are written by
// the trainers during a call to TrainBatch. An RBM and its trainer must not
// be shared between goroutines; independent (model, trainer) pairs are fine.
type RBM struct {
	Config

	W *tensor.Dense // Visible×Hidden
	A *tensor.Dense // visible bias
	B *tensor.Dense // hidden bias

	w, a, b []float32 // backing data of W, A and B

	// one Gibbs chain: clamped visible state, reconstruction, positive and
	// negative phase hidden states (activation probabilities and samples)
	V1       []float32
	V2a, V2s []float32
	H1a, H1s []float32
	H2a, H2s []float32

	uniform *rng.UniformGenerator
	gauss   *rng.GaussianGenerator
}

// New constructs a RBM with weights drawn from N(0, 0.01) and zeroed biases.
func New(conf Config) (*RBM, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid configuration %+v", conf)
	}

	m := &RBM{
		Config:  conf,
		uniform: rng.NewUniformGenerator(conf.Seed),
		gauss:   rng.NewGaussianGenerator(conf.Seed + 1),
	}

	backing := make([]float32, conf.Visible*conf.Hidden)
	for i := range backing {
		backing[i] = float32(m.gauss.Gaussian(0, 0.01))
	}
	m.W = tensor.New(tensor.WithShape(conf.Visible, conf.Hidden), tensor.WithBacking(backing))
	m.A = tensor.New(tensor.WithShape(conf.Visible), tensor.Of(tensor.Float32))
	m.B = tensor.New(tensor.WithShape(conf.Hidden), tensor.Of(tensor.Float32))
	m.w = m.W.Data().([]float32)
	m.a = m.A.Data().([]float32)
	m.b = m.B.Data().([]float32)

	m.V1 = make([]float32, conf.Visible)
	m.V2a = make([]float32, conf.Visible)
	m.V2s = make([]float32, conf.Visible)
	m.H1a = make([]float32, conf.Hidden)
	m.H1s = make([]float32, conf.Hidden)
	m.H2a = make([]float32, conf.Hidden)
	m.H2s = make([]float32, conf.Hidden)
	return m, nil
}

// Weights, VisibleBias and HiddenBias expose the backing slices of the
// parameters. Mutating them mutates the model.
func (m *RBM) Weights() []float32     { return m.w }
func (m *RBM) VisibleBias() []float32 { return m.a }
func (m *RBM) HiddenBias() []float32  { return m.b }

// ActivateHidden computes the hidden activation probabilities ha and a
// stochastic sample hs, given the visible activations va and samples vs.
// The linear term is driven by va.
func (m *RBM) ActivateHidden(ha, hs, va, vs []float32) {
	it := MakeIterator(m.w, m.Visible, m.Hidden)
	for j := range ha {
		x := m.b[j]
		for i := range va {
			x += it[i][j] * va[i]
		}
		ha[j] = sigmoid(x)
		hs[j] = m.sample(ha[j])
	}
	ReturnIterator(m.Visible, m.Hidden, it)
}

// ActivateVisible computes the visible activation probabilities va and a
// stochastic sample vs, given the hidden activations ha and samples hs.
// The linear term is driven by hs. Under Gaussian visible units the
// activation is the linear mean and the sample adds unit-variance noise.
func (m *RBM) ActivateVisible(ha, hs, va, vs []float32) {
	it := MakeIterator(m.w, m.Visible, m.Hidden)
	for i := range va {
		x := m.a[i]
		row := it[i]
		for j := range hs {
			x += row[j] * hs[j]
		}
		if m.VisibleUnit == Gaussian {
			va[i] = x
			if m.MeanField {
				vs[i] = x
			} else {
				vs[i] = x + float32(m.gauss.Gaussian(0, 1))
			}
		} else {
			va[i] = sigmoid(x)
			vs[i] = m.sample(va[i])
		}
	}
	ReturnIterator(m.Visible, m.Hidden, it)
}

func (m *RBM) sample(p float32) float32 {
	if m.MeanField {
		return p
	}
	if m.uniform.Float32() < p {
		return 1
	}
	return 0
}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// Finite reports whether every value in xs is neither NaN nor Inf.
func Finite(xs ...[]float32) bool {
	for _, x := range xs {
		for _, v := range x {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Check verifies the stability of the parameter set.
func (m *RBM) Check() error {
	if !Finite(m.w, m.a, m.b) {
		return errors.Wrap(ErrUnstable, "model parameters")
	}
	return nil
}
