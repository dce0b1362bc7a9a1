// Package app contains detdump's application services: the stream replay
// engine, the live frame sender, and the dump follower.
//
// Services depend on internal/dump for record access and on the ports
// defined in internal/ports for everything infrastructural, so each can be
// exercised in tests with in-memory stores and fake transports.
package app
