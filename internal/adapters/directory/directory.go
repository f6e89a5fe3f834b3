// Package directory serves the public department and doctor listings from static JSON.
package directory

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Paths of the data files inside the static filesystem.
const (
	DepartmentsFile = "data/Department.json"
	DoctorsFile     = "data/Doctors.json"
)

// Department is one entry of the public department listing.
type Department struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Image          string `json:"image"`
	Description    string `json:"description"`
	History        string `json:"history"`
}

// Doctor is one entry of the public doctor listing.
type Doctor struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Rating         float64 `json:"rating"`
	Contact        string  `json:"contact"`
	Image          string  `json:"image"`
}

// Directory holds the decoded listings. It is read-only after Load.
type Directory struct {
	departments []Department
	doctors     []Doctor
}

// Load decodes both listings from fsys.
func Load(fsys fs.FS) (*Directory, error) {
	d := &Directory{}
	if err := decode(fsys, DepartmentsFile, &d.departments); err != nil {
		return nil, err
	}
	if err := decode(fsys, DoctorsFile, &d.doctors); err != nil {
		return nil, err
	}
	return d, nil
}

func decode(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Departments returns every department in file order.
func (d *Directory) Departments() []Department {
	return append([]Department(nil), d.departments...)
}

// Doctors returns doctors whose name or specialization contains query
// (case-insensitive), highest rated first. An empty query returns all.
func (d *Directory) Doctors(query string) []Doctor {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Doctor, 0, len(d.doctors))
	for _, doc := range d.doctors {
		if q == "" ||
			strings.Contains(strings.ToLower(doc.Name), q) ||
			strings.Contains(strings.ToLower(doc.Specialization), q) {
			out = append(out, doc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out
}
