package session

import "github.com/verte-zerg/tuidict/internal/dictionary"

// State is either Unloaded or Loaded.
type State interface {
	isState()
}

// Unloaded is the initial state: no dictionary is available.
type Unloaded struct{}

// Loaded holds the dictionary from the last successful load.
type Loaded struct {
	Dictionary *dictionary.Dictionary
}

func (Unloaded) isState() {}
func (Loaded) isState()   {}

func dictionaryOf(s State) (*dictionary.Dictionary, bool) {
	loaded, ok := s.(Loaded)
	if !ok || loaded.Dictionary == nil {
		return nil, false
	}
	return loaded.Dictionary, true
}
