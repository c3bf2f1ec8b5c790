package record

// Buffer is a bounded FIFO holding fetched-but-unprinted records.
// Pushing onto a full buffer evicts the oldest entry.
type Buffer struct {
	records []*Record
	max     int
}

func NewBuffer(max int) *Buffer {
	if max < 1 {
		max = 1
	}
	return &Buffer{max: max}
}

func (b *Buffer) Push(rec *Record) {
	if len(b.records) == b.max {
		b.records = b.records[1:]
	}
	b.records = append(b.records, rec)
}

// Pop returns the oldest buffered record, or nil when empty.
func (b *Buffer) Pop() *Record {
	if len(b.records) == 0 {
		return nil
	}
	rec := b.records[0]
	b.records = b.records[1:]
	return rec
}

func (b *Buffer) Len() int {
	return len(b.records)
}

func (b *Buffer) Cap() int {
	return b.max
}
