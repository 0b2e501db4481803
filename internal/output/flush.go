package output

import "io"

type flusher interface {
	Flush() error
}

// flushIfPossible flushes buffered writers (e.g. *bufio.Writer) so that each
// streamed line reaches the reader as soon as it is written.
func flushIfPossible(w io.Writer) error {
	f, ok := w.(flusher)
	if !ok {
		return nil
	}
	return f.Flush()
}
