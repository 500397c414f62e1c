package clinica

import (
	"context"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

// Pacientes fetches one page of patients whose names match search.
func (c *Clinica) Pacientes(ctx context.Context, page int, search string) models.Result[[]models.Paciente] {
	return list[models.Paciente](ctx, c, "pacientes", models.PacienteURL, page, search, "Error al obtener los pacientes")
}

func (c *Clinica) Paciente(ctx context.Context, id int) models.Result[models.Paciente] {
	return detail[models.Paciente](ctx, c, "paciente", models.PacienteURL, id, "Error al obtener los detalles del paciente")
}

func (c *Clinica) CreatePaciente(ctx context.Context, p models.Paciente) models.Result[models.Paciente] {
	p.ID = 0
	return create(ctx, c, "create paciente", models.PacienteURL, p, "Error en registro")
}

func (c *Clinica) UpdatePaciente(ctx context.Context, id int, p models.Paciente) models.Result[struct{}] {
	p.ID = 0
	return update(ctx, c, "update paciente", models.PacienteURL, id, p, "Paciente actualizado exitosamente", "Error en actualización")
}

func (c *Clinica) DeletePaciente(ctx context.Context, id int) models.Result[struct{}] {
	return remove(ctx, c, "delete paciente", models.PacienteURL, id, "Paciente eliminado")
}
