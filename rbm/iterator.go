package rbm

import (
	"sync"
	"unsafe"
)

var iterPool sync.Map // [2]int → *sync.Pool of [][]float32

// MakeIterator makes row views over a flat, row-major m×n matrix. The rows
// alias data, so writing through them writes the matrix. The iterator comes
// from a pool; give it back with ReturnIterator.
func MakeIterator(data []float32, m, n int) (retVal [][]float32) {
	retVal = borrowIterator(m, n)
	for i := range retVal {
		retVal[i] = unsafe.Slice(&data[i*n], n)
	}
	return retVal
}

func borrowIterator(m, n int) [][]float32 {
	if p, ok := iterPool.Load([2]int{m, n}); ok {
		return p.(*sync.Pool).Get().([][]float32)
	}
	return make([][]float32, m)
}

func ReturnIterator(m, n int, it [][]float32) {
	p, ok := iterPool.Load([2]int{m, n})
	if !ok {
		p, _ = iterPool.LoadOrStore([2]int{m, n}, &sync.Pool{
			New: func() interface{} { return make([][]float32, m) },
		})
	}
	p.(*sync.Pool).Put(it)
}
