package compress

// zstdCodec implements the optional "zstd" wire codec. Zstd's single-call
// API has no practical input size limit for XISF's purposes, so unlike
// zlib/lz4 it never produces a sub-block list.
//
// The actual Compress/Decompress bodies live in zstd_cgo.go (cgo build,
// backed by github.com/valyala/gozstd) and zstd_pure.go (!cgo build, backed
// by github.com/klauspost/compress/zstd), mirroring mebo's compress/zstd_cgo.go
// / zstd_pure.go split so a pure-Go build of this module never requires cgo.
type zstdCodec struct{}

var _ Codec = zstdCodec{}
