package pricing

// Chunk is the contiguous row range [Start, End) of a batch.
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len is the number of rows in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// Partition splits n rows into ceil(n/size) chunks of at most size rows, in
// order. size must be positive.
func Partition(n, size int) []Chunk {
	if n <= 0 {
		return nil
	}
	chunks := make([]Chunk, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		chunks = append(chunks, Chunk{Index: len(chunks), Start: start, End: end})
	}
	return chunks
}
