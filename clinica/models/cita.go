package models

const CitaURL = "/api/citas"

// Cita references one patient and one doctor by id. The display names are
// resolved locally and never sent to the API.
type Cita struct {
	ID         int    `json:"id_cita,omitempty"`
	Fecha      string `json:"fecha"`
	Hora       string `json:"hora"`
	IDPaciente int    `json:"id_paciente"`
	IDMedico   int    `json:"id_medico"`
	Detalle    string `json:"detalle"`

	PacienteNombre string `json:"-"`
	MedicoNombre   string `json:"-"`
}

func (c Cita) Key() int {
	return c.ID
}

// ResolveNombres fills the display names by a linear search over the
// patients and doctors already in memory. Unknown ids leave the name empty.
func (c *Cita) ResolveNombres(pacientes []Paciente, medicos []Medico) {
	c.PacienteNombre = ""
	for _, p := range pacientes {
		if p.ID == c.IDPaciente {
			c.PacienteNombre = p.NombreCompleto()
			break
		}
	}
	c.MedicoNombre = ""
	for _, m := range medicos {
		if m.ID == c.IDMedico {
			c.MedicoNombre = m.NombreCompleto()
			break
		}
	}
}
