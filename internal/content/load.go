package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// Default returns the embedded sample portfolio.
func Default() (*Portfolio, error) {
	p, err := Parse(sampleYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded sample content: %w", err)
	}
	return p, nil
}

// Load reads and validates a portfolio file.
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a portfolio document, fills derived IDs and validates it.
// Unknown fields are rejected so typos surface at load time rather than as
// silently empty sections.
func Parse(data []byte) (*Portfolio, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Portfolio
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSemesters
		}
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	p.fillIDs()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DefaultKey returns the semester shown first: DefaultSemester when set,
// otherwise the first semester in the file.
func (p *Portfolio) DefaultKey() string {
	if p.DefaultSemester != "" {
		return p.DefaultSemester
	}
	if len(p.Semesters) > 0 {
		return p.Semesters[0].Key
	}
	return ""
}

// fillIDs derives stable IDs for records that omit one. Name-based UUIDs keep
// the ID identical across reloads of the same file.
func (p *Portfolio) fillIDs() {
	seen := make(map[string]int)
	for i := range p.Activities {
		a := &p.Activities[i]
		if a.ID == "" {
			a.ID = uniqueID(seen, "activity", a.Title, a.Date, a.Location)
		}
	}
	for i := range p.Semesters {
		s := &p.Semesters[i]
		for j := range s.LessonPlans {
			lp := &s.LessonPlans[j]
			if lp.ID == "" {
				lp.ID = uniqueID(seen, "lesson-plan", s.Key, lp.Subject, lp.Topic)
			}
		}
	}
}

// uniqueID derives an ID and numbers repeats in file order, so identical
// records without an id still get distinct, reload-stable IDs.
func uniqueID(seen map[string]int, kind string, parts ...string) string {
	id := derivedID(kind, parts...)
	n := seen[id]
	seen[id] = n + 1
	if n == 0 {
		return id
	}
	return derivedID(kind, append(parts, strconv.Itoa(n+1))...)
}

func derivedID(kind string, parts ...string) string {
	var b bytes.Buffer
	b.WriteString(kind)
	for _, part := range parts {
		b.WriteByte('|')
		b.WriteString(part)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, b.Bytes()).String()
}
