package models

import "github.com/GyroTools/clinica-connector-go/internals/utils"

const PacienteURL = "/api/pacientes"

type Paciente struct {
	ID     int    `json:"id_paciente,omitempty"`
	Nombre string `json:"nombre"`
	App    string `json:"app"`
	Apm    string `json:"apm"`
	Sex    string `json:"sex"`
	FN     string `json:"fn"`
	Tel    string `json:"tel"`
}

func (p Paciente) Key() int {
	return p.ID
}

func (p Paciente) NombreCompleto() string {
	return utils.JoinNonEmpty(p.Nombre, p.App, p.Apm)
}
