// Package xisf orchestrates the XISF 1.0 container: signature, XML header,
// and attachment region.
//
// # Reading
//
// Open wraps an io.ReadSeeker, checks the signature, parses the header XML
// into one or more in-memory Image objects, and leaves attachment-backed
// pixels/properties/ICC profiles unresolved until Image is called with
// readPixels set.
//
// # Writing
//
// NewWriter accumulates images (and an optional Thumbnail), then WriteTo
// serializes the DOM, back-patches attachment offsets into the placeholder
// positions the DOM was built with, and streams the header followed by the
// concatenated attachment payloads.
//
// # Compression policy
//
// Writer defaults to no compression and attachment placement for every
// DataBlock; WithCompression, WithCompressionLevel, and WithAttachments
// change that per-Writer. When the process-wide LIBXISF_COMPRESSION override
// (internal/xenv) is set, it replaces the codec of a Writer that compresses;
// the level and placement stay as configured, and a Writer left at
// compress.None still writes uncompressed blocks.
package xisf
