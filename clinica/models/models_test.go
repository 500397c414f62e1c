package models

import (
	"encoding/json"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCount_AcceptsNumberAndString(t *testing.T) {
	cases := map[string]int{
		`{"total": 14}`:   14,
		`{"total": "14"}`: 14,
		`{"total": null}`: 0,
		`{"total": ""}`:   0,
		`{}`:              0,
	}
	for body, want := range cases {
		var page Page[Paciente]
		assert.NilError(t, json.Unmarshal([]byte(body), &page), body)
		assert.Equal(t, int(page.Total), want, body)
	}
}

func TestCount_RejectsGarbage(t *testing.T) {
	var page Page[Paciente]
	err := json.Unmarshal([]byte(`{"data": [], "total": "muchos"}`), &page)
	assert.ErrorContains(t, err, "not a number")
}

func TestPage_MissingDataIsNil(t *testing.T) {
	var page Page[Medico]
	assert.NilError(t, json.Unmarshal([]byte(`{"total": 3}`), &page))
	assert.Assert(t, page.Data == nil)

	assert.NilError(t, json.Unmarshal([]byte(`{"data": [], "total": 0}`), &page))
	assert.Assert(t, page.Data != nil)
	assert.Equal(t, len(*page.Data), 0)
}

func TestPaciente_JSON(t *testing.T) {
	p := Paciente{Nombre: "Ana", App: "García", Apm: "López", Sex: "F", FN: "1990-04-02", Tel: "5551234"}
	b, err := json.Marshal(p)
	assert.NilError(t, err)
	assert.Equal(t, string(b), `{"nombre":"Ana","app":"García","apm":"López","sex":"F","fn":"1990-04-02","tel":"5551234"}`)
	assert.Equal(t, p.NombreCompleto(), "Ana García López")
}

func TestCita_ResolveNombres(t *testing.T) {
	pacientes := []Paciente{{ID: 1, Nombre: "Luis", App: "Pérez"}, {ID: 3, Nombre: "Ana", App: "García", Apm: "López"}}
	medicos := []Medico{{ID: 7, Nombre: "Rosa", App: "Méndez", Apm: "Ruiz"}}

	c := Cita{IDPaciente: 3, IDMedico: 7}
	c.ResolveNombres(pacientes, medicos)
	assert.Equal(t, c.PacienteNombre, "Ana García López")
	assert.Equal(t, c.MedicoNombre, "Rosa Méndez Ruiz")

	c = Cita{IDPaciente: 99, IDMedico: 7}
	c.ResolveNombres(pacientes, medicos)
	assert.Equal(t, c.PacienteNombre, "")
	assert.Equal(t, c.MedicoNombre, "Rosa Méndez Ruiz")
}

func TestCita_DisplayNamesNotSerialized(t *testing.T) {
	c := Cita{Fecha: "2025-03-10", Hora: "09:30", IDPaciente: 3, IDMedico: 7, PacienteNombre: "Ana"}
	b, err := json.Marshal(c)
	assert.NilError(t, err)
	assert.Equal(t, string(b), `{"fecha":"2025-03-10","hora":"09:30","id_paciente":3,"id_medico":7,"detalle":""}`)
}

func TestFechaCorta(t *testing.T) {
	assert.Equal(t, FechaCorta("1990-04-02T00:00:00.000Z"), "1990-04-02")
	assert.Equal(t, FechaCorta("1990-04-02"), "1990-04-02")
	assert.Equal(t, FechaCorta(""), "")
}
