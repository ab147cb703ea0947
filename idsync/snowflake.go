package idsync

// guidTemplate is the hyphenated placeholder pattern. Digits 0, 1 and 8 are
// substitution points; the version digit 4 is fixed.
const guidTemplate = "10000000-1000-4000-8000-100000000000"

const hexDigits = "0123456789abcdef"

// generateID produces an RFC4122-like identifier by XOR-ing each placeholder
// digit with a random nibble scaled by the digit's value. Not cryptographically
// secure; the identifier is a snowflake token, not a verified unique id.
func (m *Module) generateID() string {
	out := []byte(guidTemplate)
	for i, c := range out {
		if c != '0' && c != '1' && c != '8' {
			continue
		}
		d := c - '0'
		r := byte(m.rng.GenerateInt63() & 0xf)
		out[i] = hexDigits[(d^(r>>(d/4)))&0xf]
	}
	return string(out)
}
