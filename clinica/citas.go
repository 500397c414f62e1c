package clinica

import (
	"context"
	"strings"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

// Citas lists every appointment. The endpoint is not paginated.
func (c *Clinica) Citas(ctx context.Context) models.Result[[]models.Cita] {
	var citas []models.Cita
	if err := c.Client.GetAndParse(ctx, models.CitaURL, &citas); err != nil {
		return failure[[]models.Cita](c.log, "citas", err, "Error al obtener citas")
	}
	if citas == nil {
		citas = []models.Cita{}
	}
	r := models.Ok(citas)
	r.Total = len(citas)
	return r
}

// CreateCita refuses to send an appointment without date, time, patient and
// doctor. detalle is optional.
func (c *Clinica) CreateCita(ctx context.Context, cita models.Cita) models.Result[models.Cita] {
	if strings.TrimSpace(cita.Fecha) == "" || strings.TrimSpace(cita.Hora) == "" || cita.IDPaciente == 0 || cita.IDMedico == 0 {
		return models.Fail[models.Cita](MsgCamposRequeridos, ErrMissingFields)
	}
	cita.ID = 0
	r := create(ctx, c, "create cita", models.CitaURL, cita, "Error al crear cita")
	if r.Success {
		r.Message = "Cita creada exitosamente"
	}
	return r
}
