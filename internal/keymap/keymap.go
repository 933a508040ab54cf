package keymap

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Sequence is an ordered list of key names as reported by the terminal,
// e.g. ["Z", "Z"] or ["ctrl+c"].
type Sequence []string

// String renders the sequence in the notation ParseSequence accepts.
func (s Sequence) String() string {
	var b strings.Builder
	for _, key := range s {
		if len(key) > 1 {
			b.WriteString("<" + key + ">")
		} else {
			b.WriteString(key)
		}
	}
	return b.String()
}

// Map remaps key sequences to other key sequences, vim-style. Keys are
// fed in one at a time via Press; the map accumulates a pending
// sequence while it is still a prefix of some bound source.
//
// Map is not safe for concurrent use. The TUI drives it from the
// single Update goroutine.
type Map struct {
	pending  Sequence
	bindings map[string]Sequence
}

// New returns an empty key map.
func New() *Map {
	return &Map{bindings: make(map[string]Sequence)}
}

// Bind maps source to target. Rebinding an existing source replaces it.
// Binding while a partial sequence is pending is rejected.
func (m *Map) Bind(source, target Sequence) error {
	if len(m.pending) > 0 {
		return eris.New("cannot bind while a key sequence is pending")
	}
	if len(source) == 0 {
		return eris.New("cannot bind an empty sequence")
	}
	m.bindings[bindingKey(source)] = target
	return nil
}

// Unbind removes the binding for source. Unknown sources are a no-op.
// Unbinding while a partial sequence is pending is rejected.
func (m *Map) Unbind(source Sequence) error {
	if len(m.pending) > 0 {
		return eris.New("cannot unbind while a key sequence is pending")
	}
	delete(m.bindings, bindingKey(source))
	return nil
}

// Press feeds one key into the map.
//
// The return values mirror the three possible outcomes:
//   - (mapped, true): the pending sequence plus key exactly matched a
//     binding; mapped is the sequence to replay. Pending state is reset.
//   - (nil, true): the sequence so far is a strict prefix of at least
//     one binding; the key was consumed and is now pending.
//   - (nil, false): dead end. Pending state is reset and the key should
//     be handled normally by the caller.
func (m *Map) Press(key string) (Sequence, bool) {
	current := append(append(Sequence{}, m.pending...), key)
	m.pending = nil

	if mapped, ok := m.bindings[bindingKey(current)]; ok {
		return mapped, true
	}

	for source := range m.bindings {
		if strings.HasPrefix(source, bindingKey(current)+keySep) {
			m.pending = current
			return nil, true
		}
	}
	return nil, false
}

// Pending reports whether a partial sequence is currently accumulated.
func (m *Map) Pending() bool {
	return len(m.pending) > 0
}

// Reset clears any pending partial sequence.
func (m *Map) Reset() {
	m.pending = nil
}

const keySep = "\x1f"

func bindingKey(s Sequence) string {
	return strings.Join(s, keySep)
}

// ParseSequence parses vim-like key sequence notation: each rune is one
// key, and a bracketed token names a single multi-character key, e.g.
// "ZZ" -> [Z Z] and "<ctrl+c>x" -> [ctrl+c x].
func ParseSequence(raw string) (Sequence, error) {
	var seq Sequence
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '<' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '>' {
					end = j
					break
				}
			}
			if end < 0 || end == i+1 {
				return nil, eris.Errorf("unterminated key token in %q", raw)
			}
			seq = append(seq, string(runes[i+1:end]))
			i = end
			continue
		}
		seq = append(seq, string(runes[i]))
	}
	if len(seq) == 0 {
		return nil, eris.Errorf("empty key sequence %q", raw)
	}
	return seq, nil
}
