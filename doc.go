// Package bytehuff implements a lossless byte-stream compressor based on
// classical Huffman coding.
//
// The input is scanned once to count how often each byte occurs.  The counts
// are merged into a Huffman tree, the tree yields one prefix-free bit string
// per byte value, and the input is re-emitted as those bit strings packed
// least-significant-bit first.  The serialized Container stores only the
// frequency table and the packed bits; the tree is rebuilt on the decoding
// side with the same merge rule, so both sides always agree on the codes.
//
// Container layout (all integers little-endian):
//
//     entry_count  uint64
//     entries      entry_count × { symbol byte, frequency uint64 }
//     bit_length   uint64
//     payload      ceil(bit_length / 8) bytes
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package bytehuff
