// Package session owns the request/response layer over one MSP byte stream.
//
// Ownership boundary:
// - connection lifecycle against a Transport
// - pending-request correlation, timeouts, error propagation
// - unsolicited message and error notifications
package session
