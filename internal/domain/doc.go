// Package domain contains the core domain types for detdump.
//
// This is the innermost layer: it knows the message types a detector dump
// can contain and the error kinds the tool distinguishes, and depends on
// nothing but the standard library.
//
// # Entities
//
//   - [DHeader]: the acquisition stream header
//   - [DetectorConfig]: the detector configuration that follows the header
//   - [DImage]: the per-image header carrying the frame index
//
// A dump records one acquisition as: one DHeader record, one DetectorConfig
// record, then one quadruple per captured image (image header, image
// description, raw binary payload, image trailer). Only the payload record
// is not JSON.
package domain
