// Package compress wires the codecs named by the XISF "compression"
// attribute grammar behind a single Codec interface. See codec.go for the
// architecture overview and per-algorithm characteristics.
//
// # Integration with the datablock package
//
// datablock.DataBlock calls compress.Get to resolve the codec named by a
// parsed "compression" attribute, or the process-wide override from
// internal/xenv, and drives Compress/Decompress directly; sub-block
// bookkeeping lives in the DataBlock, not here.
package compress
