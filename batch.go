package dll

// Batches splits data into minibatches of at most size samples each. The
// samples are not copied; a batch is a window over data, so batches stay
// valid only for as long as data is not reordered.
func Batches(data [][]float32, size int) [][][]float32 {
	if size < 1 || len(data) == 0 {
		return nil
	}
	retVal := make([][][]float32, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		retVal = append(retVal, data[start:end])
	}
	return retVal
}

// Binarize thresholds every value of data in place, mapping values above
// threshold to 1 and the rest to 0. Handy for feeding grayscale data to a
// binary visible layer.
func Binarize(data [][]float32, threshold float32) {
	for _, sample := range data {
		for i, v := range sample {
			if v > threshold {
				sample[i] = 1
			} else {
				sample[i] = 0
			}
		}
	}
}
