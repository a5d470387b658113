package dll

import (
	"encoding/csv"
	"os"
	"strconv"
)

// History records the mean reconstruction error of every epoch.
type History struct {
	Errors []float32
}

func (h *History) append(reconErr float32) {
	h.Errors = append(h.Errors, reconErr)
}

// Last returns the most recent epoch error, or 0 before the first epoch.
func (h *History) Last() float32 {
	if len(h.Errors) == 0 {
		return 0
	}
	return h.Errors[len(h.Errors)-1]
}

// Dump writes the history as epoch,error CSV records.
func (h *History) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"epoch", "error"}); err != nil {
		return err
	}
	var records [][]string
	for i, e := range h.Errors {
		records = append(records, []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(e), 'f', 5, 32),
		})
	}
	return w.WriteAll(records)
}
