package biovault

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/biovault/biovault-go/internal/field"
	"github.com/biovault/biovault-go/internal/secretpoly"
	"github.com/biovault/biovault-go/internal/spatial"
)

// ExportVersion is the current export format version.
const ExportVersion = 1

// ExportedVault is the persisted form of a vault. It holds the point list,
// the degree, the field modulus and, for oriented enrollments, the helper
// minutiae. The secret, checksum and filler coefficients are never part of
// it.
type ExportedVault struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// Degree is the secret polynomial degree. At least 1.
	Degree int `json:"degree"`
	// Modulus is the prime the range values live in.
	Modulus uint64 `json:"modulus"`
	// Points are the (u, v) pairs in storage order.
	Points [][2]uint64 `json:"points"`
	// Helper is the alignment reference. Empty for plain enrollments.
	Helper []ExportedMinutia `json:"helper,omitempty"`
}

// ExportedMinutia is a helper point.
type ExportedMinutia struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Angle float64 `json:"angle"`
	Kind  string  `json:"kind,omitempty"`
}

// Validate checks the exported data. Validation steps are performed in order.
func (e *ExportedVault) Validate() error {
	// Step 1: version
	if e.Version != ExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, ExportVersion)
	}

	// Step 2: field
	if e.Modulus != field.Modulus {
		return fmt.Errorf("%w: modulus %d, expected %d", ErrInvalidImportData, e.Modulus, uint64(field.Modulus))
	}

	// Step 3: degree and size invariant
	if e.Degree < 1 || e.Degree > secretpoly.MaxDegree {
		return fmt.Errorf("%w: degree %d, must be in [1, %d]", ErrInvalidImportData, e.Degree, secretpoly.MaxDegree)
	}
	if floor := 2 * (e.Degree + 1); len(e.Points) <= floor {
		return fmt.Errorf("%w: %d points, need more than %d", ErrInvalidImportData, len(e.Points), floor)
	}

	// Step 4: points
	seen := make(map[uint64]struct{}, len(e.Points))
	for i, p := range e.Points {
		if p[1] >= field.Modulus {
			return fmt.Errorf("%w: point %d range value outside field", ErrInvalidImportData, i)
		}
		if p[0] >= spatial.Scale*spatial.Scale {
			return fmt.Errorf("%w: point %d domain value out of range", ErrInvalidImportData, i)
		}
		if _, ok := seen[p[0]]; ok {
			return fmt.Errorf("%w: duplicate domain value %d", ErrInvalidImportData, p[0])
		}
		seen[p[0]] = struct{}{}
	}

	// Step 5: helper data
	for i, m := range e.Helper {
		if m.X < 0 || m.Y < 0 || m.X >= spatial.Scale || m.Y >= spatial.Scale {
			return fmt.Errorf("%w: helper point %d out of range", ErrInvalidImportData, i)
		}
		if math.IsNaN(m.Angle) || math.IsInf(m.Angle, 0) {
			return fmt.Errorf("%w: helper point %d has non-finite angle", ErrInvalidImportData, i)
		}
		if _, ok := parseKind(m.Kind); !ok {
			return fmt.Errorf("%w: helper point %d has unknown kind %q", ErrInvalidImportData, i, m.Kind)
		}
	}

	return nil
}

// Export returns the persistable form of the vault.
func (v *Vault) Export() *ExportedVault {
	exported := &ExportedVault{
		Version: ExportVersion,
		Degree:  v.degree,
		Modulus: field.Modulus,
		Points:  make([][2]uint64, len(v.points)),
	}
	for i, p := range v.points {
		exported.Points[i] = [2]uint64{p.U, p.V}
	}
	for _, m := range v.helper {
		exported.Helper = append(exported.Helper, ExportedMinutia{
			X:     m.X,
			Y:     m.Y,
			Angle: m.Angle,
			Kind:  kindName(m.Kind),
		})
	}
	return exported
}

// MarshalJSON encodes the vault in its exported form.
func (v *Vault) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Export())
}

// UnmarshalJSON decodes and validates an exported vault.
func (v *Vault) UnmarshalJSON(data []byte) error {
	var e ExportedVault
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	imported, err := ImportVault(&e)
	if err != nil {
		return err
	}
	*v = *imported
	return nil
}

// ImportVault reconstructs a vault from exported data.
func ImportVault(data *ExportedVault) (*Vault, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidImportData)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	v := &Vault{
		degree: data.Degree,
		points: make([]VaultPoint, len(data.Points)),
	}
	for i, p := range data.Points {
		v.points[i] = VaultPoint{U: p[0], V: p[1]}
	}
	for _, m := range data.Helper {
		// Validate() already checked the kind.
		kind, _ := parseKind(m.Kind)
		v.helper = append(v.helper, Minutia(m.X, m.Y, m.Angle, kind))
	}
	return v, nil
}

func kindName(k MinutiaKind) string {
	if k == KindUnknown {
		return ""
	}
	return k.String()
}

func parseKind(s string) (MinutiaKind, bool) {
	switch s {
	case "", "unknown":
		return KindUnknown, true
	case "ending":
		return KindEnding, true
	case "bifurcation":
		return KindBifurcation, true
	}
	return KindUnknown, false
}
