package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// requiredHeaderKeys are the tokens every event header carries. A header
// missing any of them cannot be trusted.
var requiredHeaderKeys = [...]string{"ver", "server", "serial", "pool", "poolserial", "eventname", "len"}

// maxPayloadBytes caps the declared payload length. Real supervisor events
// are tiny; anything near this size is a framing error, not an event.
const maxPayloadBytes = 1 << 20

// Header is the decoded header line of one event frame.
type Header struct {
	// Tokens holds every key:value pair from the header line, required
	// or not, with later duplicates overriding earlier ones.
	Tokens map[string]string

	EventName  string
	PayloadLen int
}

// ParseTokenSet decodes a line of space-separated key:value tokens.
// Values run from the first colon to the end of the token, so they may
// themselves contain colons. A duplicated key keeps the last value.
func ParseTokenSet(line string) (map[string]string, error) {
	tokens := make(map[string]string)
	for _, tok := range strings.Split(strings.TrimSpace(line), " ") {
		if tok == "" {
			continue
		}
		key, value, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("token %q has no colon", tok)
		}
		tokens[key] = value
	}
	return tokens, nil
}

// ParseHeader decodes and validates one event header line. It reports
// ErrMalformedHeader when the line is not a clean token set, when any
// required key is absent, or when len is not a usable payload length.
func ParseHeader(line string) (Header, error) {
	tokens, err := ParseTokenSet(line)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	for _, key := range requiredHeaderKeys {
		if _, ok := tokens[key]; !ok {
			return Header{}, fmt.Errorf("%w: missing %q", ErrMalformedHeader, key)
		}
	}
	length, err := strconv.Atoi(tokens["len"])
	if err != nil || length < 0 {
		return Header{}, fmt.Errorf("%w: len %q is not a non-negative integer", ErrMalformedHeader, tokens["len"])
	}
	if length > maxPayloadBytes {
		return Header{}, fmt.Errorf("%w: len %d exceeds %d", ErrMalformedHeader, length, maxPayloadBytes)
	}
	return Header{Tokens: tokens, EventName: tokens["eventname"], PayloadLen: length}, nil
}

// DecodePayload decodes an event payload body into its key:value fields.
func DecodePayload(payload []byte) (map[string]string, error) {
	fields, err := ParseTokenSet(string(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return fields, nil
}
