// Package protocol owns the MSP wire contract shared by frame, schema,
// and session.
//
// Ownership boundary:
// - message code enumeration
// - api version gating policy
// - error taxonomy
package protocol
