package types

// Exam represents a lab exam catalog entry
type Exam struct {
	ID          string  `json:"id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion,omitempty"`
	Cost        float64 `json:"costo,omitempty"`
}

// Medication represents a medication catalog entry
type Medication struct {
	ID           string  `json:"id"`
	Name         string  `json:"nombre"`
	Presentation string  `json:"presentacion,omitempty"`
	UnitCost     float64 `json:"costo_unitario,omitempty"`
}

// Catalogs bundles the reference lists used to populate pickers.
// A slice may be empty when its fetch failed; consumers render empty
// pickers rather than blocking the screen.
type Catalogs struct {
	Exams       []*Exam       `json:"examenes"`
	Medications []*Medication `json:"medicamentos"`
	Nurses      []*Nurse      `json:"enfermeros"`
	Doctors     []*Doctor     `json:"medicos"`
}
