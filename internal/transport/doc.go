// Package transport provides the byte-stream links a session runs over:
// a local serial port and a TCP bridge (SITL, serial-over-TCP).
package transport
