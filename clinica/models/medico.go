package models

import "github.com/GyroTools/clinica-connector-go/internals/utils"

const MedicoURL = "/api/medicos"

type Medico struct {
	ID     int    `json:"id_medico,omitempty"`
	Clave  string `json:"clave"`
	Nombre string `json:"nombre"`
	App    string `json:"app"`
	Apm    string `json:"apm"`
	Sex    string `json:"sex"`
	FN     string `json:"fn"`
	Tel    string `json:"tel"`
	Email  string `json:"email"`
}

func (m Medico) Key() int {
	return m.ID
}

func (m Medico) NombreCompleto() string {
	return utils.JoinNonEmpty(m.Nombre, m.App, m.Apm)
}
