package dat

// Alphabet maps runes to dense alphabet IDs. BMP code points go through a
// two-level page table, code points beyond the BMP through a small map (CJK
// dictionaries contain only a handful of them).
type Alphabet struct {
	BMP    PagedMapBMP
	Astral map[rune]uint16
}

// Dense returns the dense ID of r, or 0 if r is not part of the alphabet.
func (a *Alphabet) Dense(r rune) uint16 {
	if r >= 0 && r <= 0xFFFF {
		return a.BMP.Dense(uint16(r))
	}
	return a.Astral[r]
}

// Set maps r to dense. Negative runes are ignored.
func (a *Alphabet) Set(r rune, dense uint16) {
	if r < 0 {
		return
	}
	if r <= 0xFFFF {
		a.BMP.Set(uint16(r), dense)
		return
	}
	if a.Astral == nil {
		a.Astral = make(map[rune]uint16)
	}
	if dense == 0 {
		delete(a.Astral, r)
		return
	}
	a.Astral[r] = dense
}

// PagedMapBMP maps BMP code units (0..65535) to dense alphabet IDs (uint16).
// It's a two-level page table:
//   - Top[hi] = page index (1..NumPages), or 0 meaning "page absent".
//   - Pages is a flat array of NumPages*256 entries.
//
// Each populated page costs 512 bytes. Japanese dictionaries populate around
// 60 pages (kana, CJK ideographs, full-width forms).
type PagedMapBMP struct {
	Top   [256]uint16 // page index (1-based); 0 means none
	Pages []uint16    // flat: NumPages*256
}

// Dense returns the dense alphabet ID for a BMP code unit.
// Returns 0 if absent.
func (m *PagedMapBMP) Dense(bmp uint16) uint16 {
	pi := m.Top[bmp>>8]
	if pi == 0 {
		return 0
	}
	i := int(pi-1)<<8 + int(bmp&0xFF)
	if i >= len(m.Pages) {
		return 0
	}
	return m.Pages[i]
}

// NumPages returns the number of allocated pages.
func (m *PagedMapBMP) NumPages() int { return len(m.Pages) >> 8 }

// Set sets mapping bmp -> dense (dense may be 0 to clear).
func (m *PagedMapBMP) Set(bmp uint16, dense uint16) {
	hi := bmp >> 8
	pi := m.Top[hi]
	if pi == 0 {
		if dense == 0 {
			return
		}
		m.Pages = append(m.Pages, make([]uint16, 256)...)
		pi = uint16(m.NumPages())
		m.Top[hi] = pi
	}
	m.Pages[int(pi-1)<<8+int(bmp&0xFF)] = dense
}
