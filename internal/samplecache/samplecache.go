// Package samplecache implements the bounded, rewindable scratch buffer the
// scanner mirrors every consumed character into while it is still sniffing
// line termination, header, and format. It stands in for the original
// implementation's getdelim-over-tmpfile approach with an in-memory growable buffer, per
// spec.md's "Sample cache replay" design note: any rewindable byte buffer
// suffices, and size is bounded by MAX_HEADER_LINES + MAX_SAMPLE_LINES worth
// of lines.
package samplecache

// Cache accumulates bytes verbatim and can be replayed line-by-line once
// writing is done.
type Cache struct {
	buf []byte
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

// Write appends p to the cache. It never fails.
func (c *Cache) Write(p []byte) (int, error) {
	c.buf = append(c.buf, p...)
	return len(p), nil
}

// Lines splits the cached bytes on sep, returning each line WITH its
// trailing separator byte still attached (mirroring getdelim semantics),
// except possibly the final line if the cache doesn't end in sep.
func (c *Cache) Lines(sep byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range c.buf {
		if b == sep {
			lines = append(lines, c.buf[start:i+1])
			start = i + 1
		}
	}
	if start < len(c.buf) {
		lines = append(lines, c.buf[start:])
	}
	return lines
}

// Bytes returns the full accumulated content.
func (c *Cache) Bytes() []byte {
	return c.buf
}

// Reset discards the cached content, releasing the backing array.
func (c *Cache) Reset() {
	c.buf = nil
}
