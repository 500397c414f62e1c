package forms

import (
	"context"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

// PacienteForm backs both the "alta" and the "editar" patient screens. A zero
// ID means a new patient.
type PacienteForm struct {
	ID     int
	Nombre string
	App    string
	Apm    string
	Sex    string
	FN     string
	Tel    string

	// Message is what the screen shows after the last submit.
	Message string
}

type PacienteService interface {
	CreatePaciente(ctx context.Context, p models.Paciente) models.Result[models.Paciente]
	UpdatePaciente(ctx context.Context, id int, p models.Paciente) models.Result[struct{}]
}

// EditPaciente prefills the form from a record.
func EditPaciente(p models.Paciente) *PacienteForm {
	return &PacienteForm{ID: p.ID, Nombre: p.Nombre, App: p.App, Apm: p.Apm, Sex: p.Sex, FN: models.FechaCorta(p.FN), Tel: p.Tel}
}

func (f *PacienteForm) Paciente() models.Paciente {
	return models.Paciente{ID: f.ID, Nombre: f.Nombre, App: f.App, Apm: f.Apm, Sex: f.Sex, FN: f.FN, Tel: f.Tel}
}

func (f *PacienteForm) Validate() error {
	return Required(
		Field{"nombre", f.Nombre},
		Field{"app", f.App},
		Field{"apm", f.Apm},
		Field{"sex", f.Sex},
		Field{"fn", f.FN},
		Field{"tel", f.Tel},
	)
}

func (f *PacienteForm) Submit(ctx context.Context, svc PacienteService) error {
	if err := f.Validate(); err != nil {
		f.Message = MsgCamposObligatorios
		return err
	}
	if f.ID == 0 {
		res := svc.CreatePaciente(ctx, f.Paciente())
		if !res.Success {
			f.Message = res.Message
			return &Error{Message: res.Message, Err: res.Err}
		}
		f.Message = "Paciente registrado exitosamente"
		if res.Data.ID != 0 {
			f.ID = res.Data.ID
		}
		return nil
	}
	res := svc.UpdatePaciente(ctx, f.ID, f.Paciente())
	f.Message = res.Message
	if !res.Success {
		return &Error{Message: res.Message, Err: res.Err}
	}
	return nil
}

// MedicoForm backs the doctor "alta" and "editar" screens.
type MedicoForm struct {
	ID     int
	Clave  string
	Nombre string
	App    string
	Apm    string
	Sex    string
	FN     string
	Tel    string
	Email  string

	Message string
}

type MedicoService interface {
	CreateMedico(ctx context.Context, m models.Medico) models.Result[models.Medico]
	UpdateMedico(ctx context.Context, id int, m models.Medico) models.Result[struct{}]
}

func EditMedico(m models.Medico) *MedicoForm {
	return &MedicoForm{ID: m.ID, Clave: m.Clave, Nombre: m.Nombre, App: m.App, Apm: m.Apm, Sex: m.Sex, FN: models.FechaCorta(m.FN), Tel: m.Tel, Email: m.Email}
}

func (f *MedicoForm) Medico() models.Medico {
	return models.Medico{ID: f.ID, Clave: f.Clave, Nombre: f.Nombre, App: f.App, Apm: f.Apm, Sex: f.Sex, FN: f.FN, Tel: f.Tel, Email: f.Email}
}

// Validate checks presence only; the email is not pattern-checked.
func (f *MedicoForm) Validate() error {
	return Required(
		Field{"clave", f.Clave},
		Field{"nombre", f.Nombre},
		Field{"app", f.App},
		Field{"apm", f.Apm},
		Field{"sex", f.Sex},
		Field{"fn", f.FN},
		Field{"tel", f.Tel},
		Field{"email", f.Email},
	)
}

func (f *MedicoForm) Submit(ctx context.Context, svc MedicoService) error {
	if err := f.Validate(); err != nil {
		f.Message = MsgCamposObligatorios
		return err
	}
	if f.ID == 0 {
		res := svc.CreateMedico(ctx, f.Medico())
		if !res.Success {
			f.Message = res.Message
			return &Error{Message: res.Message, Err: res.Err}
		}
		f.Message = "Médico registrado exitosamente"
		if res.Data.ID != 0 {
			f.ID = res.Data.ID
		}
		return nil
	}
	res := svc.UpdateMedico(ctx, f.ID, f.Medico())
	f.Message = res.Message
	if !res.Success {
		return &Error{Message: res.Message, Err: res.Err}
	}
	return nil
}
