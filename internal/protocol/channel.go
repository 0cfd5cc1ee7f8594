package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Channel is the byte conduit between the supervisor and the listener.
// Reads come from the supervisor-facing input (stdin under supervisord),
// writes go to the supervisor-facing output (stdout). It knows nothing
// beyond line and exact-length framing.
type Channel struct {
	r *bufio.Reader
	w io.Writer
}

// NewChannel wraps the supervisor-facing reader and writer. The writer
// must not buffer; every write has to reach the supervisor immediately.
func NewChannel(r io.Reader, w io.Writer) *Channel {
	return &Channel{r: bufio.NewReader(r), w: w}
}

// ReadHeaderLine reads one newline-terminated line and returns it without
// the trailing newline. End of input, a partial line, or any other read
// failure reports ErrChannelClosed.
func (c *Channel) ReadHeaderLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrChannelClosed
		}
		return "", fmt.Errorf("%w: read header line: %v", ErrChannelClosed, err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// ReadExact reads exactly n bytes. A short read means the supervisor went
// away mid-frame and reports ErrChannelClosed.
func (c *Channel) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrChannelClosed
		}
		return nil, fmt.Errorf("%w: read payload: %v", ErrChannelClosed, err)
	}
	return buf, nil
}

// WriteLine writes line followed by a single newline.
func (c *Channel) WriteLine(line string) error {
	return c.writeString(line + "\n")
}

func (c *Channel) writeString(s string) error {
	if _, err := io.WriteString(c.w, s); err != nil {
		return fmt.Errorf("%w: write: %v", ErrChannelClosed, err)
	}
	return nil
}
