package loaders

import "encoding/binary"

// Binary holds the raw content of a file.
type Binary struct {
	Path string
	Data []byte
}

func (b *Binary) Kind() string {
	return "binary"
}

func (b *Binary) Load(path string, data []byte) error {
	b.Path = path
	b.Data = data
	return nil
}

// Words interprets the content as little-endian 32-bit words, the layout
// of SPIR-V bytecode. Trailing bytes that do not fill a word are dropped.
func (b *Binary) Words() []uint32 {
	words := make([]uint32, len(b.Data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b.Data[i*4:])
	}
	return words
}

