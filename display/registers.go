package display

// Payload is the value written to a controller register: either a single
// byte or a byte sequence.
type Payload interface {
	Bytes() []byte
}

// Byte is a single byte register value.
type Byte byte

func (b Byte) Bytes() []byte { return []byte{byte(b)} }

// Seq is a multi byte register value.
type Seq []byte

func (s Seq) Bytes() []byte { return []byte(s) }

// Register pairs a controller register address with its value.
type Register struct {
	Addr    byte
	Payload Payload
}

// InitType is the panel type passed to Graphics.Init.
const InitType = 3

// InitSequence configures color format, porch, gate and power voltages and
// the gamma curves.
var InitSequence = []Register{
	{0x3A, Byte(0x05)}, // 16 bit/pixel
	{0xB2, Seq{0x05, 0x05, 0x00, 0x33, 0x33}},
	{0xB7, Byte(0x23)},
	{0xBB, Byte(0x22)},
	{0xC0, Byte(0x2C)},
	{0xC2, Byte(0x01)},
	{0xC3, Byte(0x13)},
	{0xC4, Byte(0x20)},
	{0xC6, Byte(0x0F)},
	{0xD0, Seq{0xA4, 0xA1}},
	{0xD6, Byte(0xA1)},
	{0xE0, Seq{0x23, 0x70, 0x06, 0x0C, 0x08, 0x09, 0x27, 0x2E, 0x34, 0x46, 0x37, 0x13, 0x13, 0x25, 0x2A}}, // positive gamma
	{0xE1, Seq{0x70, 0x04, 0x08, 0x09, 0x07, 0x03, 0x2C, 0x42, 0x42, 0x38, 0x14, 0x14, 0x27, 0x2C}},       // negative gamma
}
