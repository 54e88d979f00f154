package texcache

// SourceKey identifies one cached draw-state source: which VRAM page it
// samples, in which mode, and (for paletted modes) which CLUT. It is
// exactly 32 bits and must compare equal bytewise, so every field —
// including palette when it's semantically unused — is canonicalized on
// construction.
type SourceKey struct {
	Page    uint8
	Mode    Mode
	Palette PaletteReg
}

// NewSourceKey builds a canonical SourceKey: mode is normalized
// (Reserved_Direct16Bit -> Direct16Bit) and, for direct modes where the
// palette field carries no meaning, palette is forced to zero so that two
// direct-mode lookups of the same page always compare equal regardless of
// whatever palette register happened to be latched at draw time.
func NewSourceKey(page uint8, mode Mode, palette PaletteReg) SourceKey {
	mode = mode.Normalize()
	if !mode.Paletted() {
		palette = 0
	}
	return SourceKey{Page: page, Mode: mode, Palette: palette}
}

func (k SourceKey) String() string {
	if k.Mode.Paletted() {
		return k.Mode.String() + " page=" + itoa(int(k.Page)) +
			" clut=(" + itoa(k.Palette.GetXBase()) + "," + itoa(k.Palette.GetYBase()) + ")"
	}
	return k.Mode.String() + " page=" + itoa(int(k.Page))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
