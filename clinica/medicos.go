package clinica

import (
	"context"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

// Medicos fetches one page of doctors whose names match search.
func (c *Clinica) Medicos(ctx context.Context, page int, search string) models.Result[[]models.Medico] {
	return list[models.Medico](ctx, c, "medicos", models.MedicoURL, page, search, "Error al obtener los médicos")
}

func (c *Clinica) Medico(ctx context.Context, id int) models.Result[models.Medico] {
	return detail[models.Medico](ctx, c, "medico", models.MedicoURL, id, "Error al obtener los detalles del médico")
}

func (c *Clinica) CreateMedico(ctx context.Context, m models.Medico) models.Result[models.Medico] {
	m.ID = 0
	return create(ctx, c, "create medico", models.MedicoURL, m, "Error en registro")
}

func (c *Clinica) UpdateMedico(ctx context.Context, id int, m models.Medico) models.Result[struct{}] {
	m.ID = 0
	return update(ctx, c, "update medico", models.MedicoURL, id, m, "Médico actualizado exitosamente", "Error en actualización")
}

func (c *Clinica) DeleteMedico(ctx context.Context, id int) models.Result[struct{}] {
	return remove(ctx, c, "delete medico", models.MedicoURL, id, "Médico eliminado")
}
