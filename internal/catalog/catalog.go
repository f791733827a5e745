// Package catalog provides the fixed set of activities the directory is
// built from at startup.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/forgo/signup/api/internal/model"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no activities")
	ErrNameRequired  = errors.New("activity name is required")
	ErrDuplicateName = errors.New("duplicate activity name")
)

// Default returns the built-in activity catalog
func Default() model.Directory {
	return model.Directory{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Train and compete in interschool soccer matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice drills and play in the school basketball league",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing and mixed media",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct and produce school plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}

type file struct {
	Activities []model.Activity `yaml:"activities"`
}

// LoadFile reads a YAML catalog:
//
//	activities:
//	  - name: Chess Club
//	    description: ...
//	    participants: [a@example.com]
func LoadFile(path string) (model.Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	d := model.Directory(f.Activities)
	if err := Validate(d); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return d, nil
}

// Load returns the catalog at path, or the built-in one when path is empty
func Load(path string) (model.Directory, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Validate checks names are present and unique, max_participants is not
// negative, and no roster lists the same email twice.
func Validate(d model.Directory) error {
	if len(d) == 0 {
		return ErrEmptyCatalog
	}

	var errs []error
	seen := make(map[string]struct{}, len(d))
	for i, a := range d {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("activity %d: %w", i, ErrNameRequired))
			continue
		}
		if _, dup := seen[a.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateName, a.Name))
		}
		seen[a.Name] = struct{}{}

		if a.MaxParticipants < 0 {
			errs = append(errs, fmt.Errorf("%q: max_participants must not be negative", a.Name))
		}

		emails := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := emails[p]; dup {
				errs = append(errs, fmt.Errorf("%q: participant %s listed twice", a.Name, p))
			}
			emails[p] = struct{}{}
		}
	}

	return errors.Join(errs...)
}
