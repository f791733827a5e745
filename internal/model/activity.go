package model

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Activity is a named club or class students can sign up for.
// Name and the descriptive fields never change after the directory is built;
// only Participants is mutated.
type Activity struct {
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// HasParticipant reports whether email is on the roster
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a deep copy so callers can't alias the roster
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// Directory is the full set of activities in catalog order.
// It serializes as a JSON object keyed by activity name.
type Directory []Activity

// Find returns the activity with the given name
func (d Directory) Find(name string) (*Activity, bool) {
	for i := range d {
		if d[i].Name == name {
			return &d[i], true
		}
	}
	return nil, false
}

// Names returns activity names in catalog order
func (d Directory) Names() []string {
	names := make([]string, 0, len(d))
	for _, a := range d {
		names = append(names, a.Name)
	}
	return names
}

// Clone returns a deep copy of the directory
func (d Directory) Clone() Directory {
	out := make(Directory, 0, len(d))
	for _, a := range d {
		out = append(out, a.Clone())
	}
	return out
}

// MarshalJSON writes the directory as {"<name>": {...}, ...} keeping catalog order
func (d Directory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MessageResponse is the body returned by roster mutations
type MessageResponse struct {
	Message string `json:"message"`
}
