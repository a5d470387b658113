// Command bas trains a RBM on the bars and stripes toy dataset and writes
// the learned filters as an animated GIF plus the error curve as CSV.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/10183308/dll"
	"github.com/10183308/dll/cd"
	"github.com/10183308/dll/encoding/filters"
	"github.com/10183308/dll/rbm"
)

var (
	size       = flag.Int("size", 4, "edge length of the bars and stripes patterns")
	hidden     = flag.Int("hidden", 16, "number of hidden units")
	k          = flag.Int("k", 1, "number of Gibbs steps per sample")
	epochs     = flag.Int("epochs", 50, "training epochs")
	persistent = flag.Bool("persistent", false, "use persistent contrastive divergence")
	gifOut     = flag.String("gif", "filters.gif", "filters animation output")
	csvOut     = flag.String("csv", "error.csv", "reconstruction error output")
)

// barsAndStripes enumerates every n×n pattern whose rows (or columns) are
// each fully on or fully off. The all-on and all-off patterns belong to
// both orientations and are listed once.
func barsAndStripes(n int) [][]float32 {
	var data [][]float32
	for mask := 0; mask < 1<<n; mask++ {
		h := make([]float32, n*n)
		v := make([]float32, n*n)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				if mask&(1<<r) != 0 {
					h[r*n+c] = 1
				}
				if mask&(1<<c) != 0 {
					v[r*n+c] = 1
				}
			}
		}
		data = append(data, h)
		if mask != 0 && mask != 1<<n-1 {
			data = append(data, v)
		}
	}
	return data
}

func main() {
	flag.Parse()

	conf := rbm.DefaultConf(*size**size, *hidden)
	conf.BatchSize = 8
	m, err := rbm.New(conf)
	if err != nil {
		log.Fatal(err)
	}

	var t dll.Trainer
	if *persistent {
		t, err = cd.NewPersistent(*k, m)
	} else {
		t, err = cd.New(*k, m)
	}
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*gifOut)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	tc := dll.DefaultTrainConf()
	tc.Epochs = *epochs
	tc.BatchSize = conf.BatchSize
	tc.Shuffle = !*persistent // persistent chains need stable slots
	tc.Encoder = filters.NewGifEncoder(f, *size, *size)

	hist, err := dll.Train(t, m, barsAndStripes(*size), tc)
	if err != nil {
		log.Fatal(err)
	}
	if err := hist.Dump(*csvOut); err != nil {
		log.Fatal(err)
	}
	log.Printf("final error %.5f", hist.Last())
}
