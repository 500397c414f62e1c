package forms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GyroTools/clinica-connector-go/clinica/loader"
	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

const (
	primeraHora = 9
	ultimaHora  = 18
	horaDefault = "09:00"
)

type AgendaService interface {
	Pacientes(ctx context.Context, page int, search string) models.Result[[]models.Paciente]
	Medicos(ctx context.Context, page int, search string) models.Result[[]models.Medico]
	Citas(ctx context.Context) models.Result[[]models.Cita]
	CreateCita(ctx context.Context, cita models.Cita) models.Result[models.Cita]
}

// CitaForm is the appointment entry. A zero patient or doctor id means
// nothing was picked.
type CitaForm struct {
	Fecha      time.Time
	Hora       string
	IDPaciente int
	IDMedico   int
	Detalle    string
}

func NewCitaForm(now time.Time) CitaForm {
	return CitaForm{Fecha: now, Hora: horaDefault}
}

func (f CitaForm) Validate() error {
	var missing []string
	if f.Fecha.IsZero() {
		missing = append(missing, "fecha")
	}
	if f.Hora == "" {
		missing = append(missing, "hora")
	}
	if f.IDPaciente == 0 {
		missing = append(missing, "paciente")
	}
	if f.IDMedico == 0 {
		missing = append(missing, "medico")
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

func (f CitaForm) Cita() models.Cita {
	return models.Cita{
		Fecha:      f.Fecha.Format(models.DateLayout),
		Hora:       f.Hora,
		IDPaciente: f.IDPaciente,
		IDMedico:   f.IDMedico,
		Detalle:    f.Detalle,
	}
}

// Horarios lists the bookable slots, every half hour from 09:00 to 18:00.
func Horarios() []string {
	var slots []string
	for h := primeraHora; h <= ultimaHora; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
		if h < ultimaHora {
			slots = append(slots, fmt.Sprintf("%02d:30", h))
		}
	}
	return slots
}

// Agenda is the appointment screen: the pickers' patients and doctors, the
// table of appointments and the scheduling form.
type Agenda struct {
	svc AgendaService
	now func() time.Time

	mu        sync.Mutex
	pacientes []models.Paciente
	medicos   []models.Medico
	citas     []models.Cita
	loading   bool
}

func NewAgenda(svc AgendaService) *Agenda {
	return &Agenda{svc: svc, now: time.Now}
}

// Load fetches the first page of patients and doctors and every appointment
// in parallel, then resolves the appointment names. Whatever loaded is kept
// even when another fetch failed; the first failure is returned.
func (a *Agenda) Load(ctx context.Context) error {
	a.mu.Lock()
	if a.loading {
		a.mu.Unlock()
		return loader.ErrBusy
	}
	a.loading = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.loading = false
		a.mu.Unlock()
	}()

	var (
		pacientesRes models.Result[[]models.Paciente]
		medicosRes   models.Result[[]models.Medico]
		citasRes     models.Result[[]models.Cita]
	)
	// plain Group: one failure must not cancel the other requests
	var g errgroup.Group
	g.Go(func() error {
		pacientesRes = a.svc.Pacientes(ctx, 1, "")
		return resultErr(pacientesRes.Success, pacientesRes.Message, pacientesRes.Err)
	})
	g.Go(func() error {
		medicosRes = a.svc.Medicos(ctx, 1, "")
		return resultErr(medicosRes.Success, medicosRes.Message, medicosRes.Err)
	})
	g.Go(func() error {
		citasRes = a.svc.Citas(ctx)
		return resultErr(citasRes.Success, citasRes.Message, citasRes.Err)
	})
	err := g.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	if pacientesRes.Success {
		a.pacientes = pacientesRes.Data
	}
	if medicosRes.Success {
		a.medicos = medicosRes.Data
	}
	if citasRes.Success {
		citas := make([]models.Cita, len(citasRes.Data))
		for i, c := range citasRes.Data {
			c.ResolveNombres(a.pacientes, a.medicos)
			citas[i] = c
		}
		a.citas = citas
	}
	return err
}

func resultErr(ok bool, message string, err error) error {
	if ok {
		return nil
	}
	return &Error{Message: message, Err: err}
}

// Schedule creates the appointment and appends it to the table with its
// names resolved, without reloading. On success the form is reset to today
// at 09:00; on failure it is left as it was.
func (a *Agenda) Schedule(ctx context.Context, form *CitaForm) (models.Cita, error) {
	if err := form.Validate(); err != nil {
		return models.Cita{}, &Error{Message: "Debes seleccionar un paciente y un médico", Err: err}
	}

	sent := form.Cita()
	res := a.svc.CreateCita(ctx, sent)
	if !res.Success {
		return models.Cita{}, &Error{Message: res.Message, Err: res.Err}
	}

	created := res.Data
	// some servers answer with the id only
	if created.Fecha == "" {
		created.Fecha = sent.Fecha
	}
	if created.Hora == "" {
		created.Hora = sent.Hora
	}
	if created.IDPaciente == 0 {
		created.IDPaciente = sent.IDPaciente
	}
	if created.IDMedico == 0 {
		created.IDMedico = sent.IDMedico
	}
	if created.Detalle == "" {
		created.Detalle = sent.Detalle
	}

	a.mu.Lock()
	created.ResolveNombres(a.pacientes, a.medicos)
	a.citas = append(a.citas, created)
	a.mu.Unlock()

	*form = NewCitaForm(a.now())
	return created, nil
}

func (a *Agenda) Citas() []models.Cita {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Cita(nil), a.citas...)
}

func (a *Agenda) Pacientes() []models.Paciente {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Paciente(nil), a.pacientes...)
}

func (a *Agenda) Medicos() []models.Medico {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Medico(nil), a.medicos...)
}
