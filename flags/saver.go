package flags

import (
	"encoding/json"
)

// Saver is a snapshot of the state of every flag in a registry.
//
// Restore puts back the default value, current value, modified bit, and
// validator of each flag that existed when the snapshot was taken. Flags
// registered afterwards are left alone.
type Saver struct {
	reg   *Registry
	flags []*Flag
}

// Save takes a snapshot of r.
func (r *Registry) Save() *Saver {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Saver{reg: r, flags: make([]*Flag, 0, len(r.byName))}
	for _, name := range r.namesLocked() {
		s.flags = append(s.flags, r.byName[name].clone())
	}

	return s
}

// Restore copies the saved state back into the registry.
func (s *Saver) Restore() {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	for _, saved := range s.flags {
		live := s.reg.lookupLocked(saved.name)
		if live == nil {
			continue
		}

		live.copyFrom(saved)
	}

	s.reg.logger.Trace("flags restored")
}

// Flags describes the saved state in name order.
func (s *Saver) Flags() []FlagInfo {
	infos := make([]FlagInfo, len(s.flags))
	for i, flag := range s.flags {
		infos[i] = flag.info()
	}

	return infos
}

// MarshalJSON encodes the saved flags as a JSON array of [FlagInfo].
func (s *Saver) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Flags())
}

// MarshalYAML encodes the saved flags as a YAML sequence of [FlagInfo].
func (s *Saver) MarshalYAML() (any, error) {
	return s.Flags(), nil
}

// WithSaved runs fn and then restores every flag of reg to its state before
// fn ran.
func WithSaved(reg *Registry, fn func()) {
	s := reg.Save()
	defer s.Restore()

	fn()
}
