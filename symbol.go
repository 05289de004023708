package bytehuff

// Symbol represents one byte of input.  All 256 values are valid, including 0.
type Symbol byte

// NumSymbols is the size of the alphabet.
const NumSymbols = 256

// MaxCodeSize is the longest code any tree over this alphabet can produce:
// a fully skewed tree with NumSymbols leaves is NumSymbols-1 levels deep.
const MaxCodeSize = NumSymbols - 1
