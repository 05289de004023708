package bytehuff

// Encode compresses data into a Container.  Empty data yields
// *EmptyInputError and no Container.
func Encode(data []byte) (*Container, error) {
	ft := CountFrequencies(data)
	t, err := BuildTree(ft)
	if err != nil {
		return nil, err
	}
	ct := NewCodeTable(t)
	payload, bitLength, err := EncodeBits(data, ct)
	if err != nil {
		return nil, err
	}
	return &Container{
		Frequencies: ft,
		BitLength:   bitLength,
		Payload:     payload,
	}, nil
}

// Decode reconstructs the original data from a Container.  It either returns
// all of the data or an error; never a prefix of the data.
func Decode(c *Container) ([]byte, error) {
	if err := c.checkPayload(); err != nil {
		return nil, err
	}

	t, err := BuildTree(c.Frequencies)
	if err != nil {
		return nil, err
	}

	// Every symbol takes at least one bit, so BitLength bounds the output.
	size := t.Weight(t.Root())
	if size > c.BitLength {
		size = c.BitLength
	}

	d := NewDecoder(t, c.BitLength)
	out, _, err := d.Decode(make([]byte, 0, size), c.Payload)
	if err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return out, nil
}

// Compress is Encode followed by Container.MarshalBinary.
func Compress(data []byte) ([]byte, error) {
	c, err := Encode(data)
	if err != nil {
		return nil, err
	}
	return c.MarshalBinary()
}

// Decompress is Container.UnmarshalBinary followed by Decode.
func Decompress(data []byte) ([]byte, error) {
	var c Container
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return Decode(&c)
}
