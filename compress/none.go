package compress

// noneCodec is the identity codec (format.CompressionNone's XISF analogue).
type noneCodec struct{}

var _ Codec = noneCodec{}

func (noneCodec) Compress(input []byte, _ int) ([]byte, []SubBlock, error) {
	return append([]byte(nil), input...), nil, nil
}

func (noneCodec) Decompress(input []byte, _ int, _ []SubBlock) ([]byte, error) {
	return append([]byte(nil), input...), nil
}
