package module

import (
	"fmt"
	"strings"
)

// Section identifies one of the six module sub-regions.
type Section int

const (
	Starter Section = iota
	Loader
	Modification
	Transport
	Finalisation
	Other

	// NumSections is the number of module sections.
	NumSections = 6
)

var (
	sectionCodes = [NumSections]string{"S", "L", "M", "T", "F", "O"}
	sectionNames = [NumSections]string{"starter", "loader", "modification", "transport", "finalisation", "other"}
)

// Sections returns all sections in canonical order.
func Sections() []Section {
	return []Section{Starter, Loader, Modification, Transport, Finalisation, Other}
}

// Code returns the one-letter section label used in queries.
func (s Section) Code() string {
	if s < 0 || s >= NumSections {
		return "?"
	}
	return sectionCodes[s]
}

// String returns the long section name.
func (s Section) String() string {
	if s < 0 || s >= NumSections {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// ParseSection accepts a one-letter code or a long name, case-insensitively.
func ParseSection(label string) (Section, error) {
	label = strings.TrimSpace(label)
	for i := range NumSections {
		if strings.EqualFold(label, sectionCodes[i]) || strings.EqualFold(label, sectionNames[i]) {
			return Section(i), nil
		}
	}
	return 0, fmt.Errorf("unknown section %q", label)
}

// Architecture holds a module's ordered domain labels per section.
// Missing sections are empty.
type Architecture map[Section][]string
