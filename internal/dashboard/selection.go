package dashboard

import "sort"

// Selection is the set of stats the user wants charted. It does not check
// keys against the catalog; callers pass sanitized input.
type Selection struct {
	keys map[string]struct{}
}

func NewSelection() *Selection {
	s := &Selection{}
	s.Reset()
	return s
}

// Replace swaps the whole selection for keys.
func (s *Selection) Replace(keys []string) {
	s.keys = make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
}

func (s *Selection) Reset() {
	s.Replace(DefaultSelection())
}

func (s *Selection) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

func (s *Selection) HasAny(keys ...string) bool {
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the selection in catalog order; keys the catalog does not
// know come last, sorted.
func (s *Selection) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, aok := catalogIndex[out[i]]
		b, bok := catalogIndex[out[j]]
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return out[i] < out[j]
		}
	})
	return out
}

func (s *Selection) Clone() *Selection {
	return SelectionOf(s.Keys()...)
}

func SelectionOf(keys ...string) *Selection {
	s := &Selection{}
	s.Replace(keys)
	return s
}
