// Package protocol owns the supervisor eventlistener wire contract and
// parsing primitives.
//
// Ownership boundary:
// - channel primitives (header lines, exact-length payload reads)
// - header and payload token parsing
// - READY/RESULT handshake framing
//
// The conversation itself (which token is written when) is owned by the
// listener package.
package protocol
