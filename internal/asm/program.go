package asm

import "hack.n2t.dev/internal/word"

// Program is the word stream a translated `.asm` source file lowers to: an
// ordered, read-only sequence indexed by program counter.
type Program []word.Word

// DebugSite records where one emitted word came from, for diagnostics such
// as the CLI's --debug listing.
type DebugSite struct {
	SourceLine int // 1-based
	SourceText string
}

// DebugMap is the optional side-channel Assemble returns when asked: for
// each emitted-word index, the source line that word was lowered from. Label
// and blank lines never appear here, since they emit no word.
type DebugMap struct {
	sites []DebugSite
}

// Site returns the debug info for the word at index idx, if the map carries
// one (it always does for any idx within a Program built alongside it).
func (d *DebugMap) Site(idx int) (DebugSite, bool) {
	if d == nil || idx < 0 || idx >= len(d.sites) {
		return DebugSite{}, false
	}
	return d.sites[idx], true
}

// Len reports how many words the map has sites for.
func (d *DebugMap) Len() int {
	if d == nil {
		return 0
	}
	return len(d.sites)
}
