// Package ports defines the interfaces that connect detdump's core to
// infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world: they say what the core needs without saying how it is provided.
//
//   - [Classifier]: decides whether a raw record is JSON or opaque binary
//   - [FrameTransport]: delivers one record per transport frame to a peer
//
// The application layer (internal/app) depends only on these interfaces;
// concrete implementations live in internal/scan and internal/adapters.
// Tests substitute their own implementations without touching the core.
package ports
