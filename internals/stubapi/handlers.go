package stubapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/redirige", h.Login)
	api.POST("/registros", h.Register)

	api.GET("/pacientes", h.ListPacientes)
	api.POST("/pacientes", h.CreatePaciente)
	api.GET("/pacientes/:id", h.GetPaciente)
	api.PUT("/pacientes/:id", h.UpdatePaciente)
	api.DELETE("/pacientes/:id", h.DeletePaciente)

	api.GET("/medicos", h.ListMedicos)
	api.POST("/medicos", h.CreateMedico)
	api.GET("/medicos/:id", h.GetMedico)
	api.PUT("/medicos/:id", h.UpdateMedico)
	api.DELETE("/medicos/:id", h.DeleteMedico)

	api.GET("/citas", h.ListCitas)
	api.POST("/citas", h.CreateCita)
}

type listParams struct {
	page   int
	limit  int
	search string
}

func paramsFrom(c echo.Context) listParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = models.PageSize
	}
	return listParams{page: page, limit: limit, search: strings.TrimSpace(c.QueryParam("search"))}
}

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "ID inválido")
	}
	return id, nil
}

func missing(fields map[string]string) []string {
	var names []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			names = append(names, name)
		}
	}
	return names
}

func requireFields(fields map[string]string) error {
	if names := missing(fields); len(names) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Faltan campos obligatorios")
	}
	return nil
}

// -- Auth --

func (h *Handler) Login(c echo.Context) error {
	var cred models.Credenciales
	if err := c.Bind(&cred); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	login, err := h.store.Login(cred.Email, cred.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"msg": "Credenciales incorrectas"})
	}
	return c.JSON(http.StatusOK, login)
}

func (h *Handler) Register(c echo.Context) error {
	var reg models.RegistroUsuario
	if err := c.Bind(&reg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	if names := missing(map[string]string{"nombre": reg.Nombre, "email": reg.Email, "password": reg.Password}); len(names) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"msg": "Faltan campos obligatorios"})
	}
	login, err := h.store.Register(reg)
	if errors.Is(err, ErrDuplicate) {
		return c.JSON(http.StatusConflict, map[string]string{"msg": "El correo ya está registrado"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, login)
}

// -- Pacientes --

func (h *Handler) ListPacientes(c echo.Context) error {
	p := paramsFrom(c)
	rows, total := h.store.ListPacientes(p.page, p.limit, p.search)
	return c.JSON(http.StatusOK, map[string]interface{}{"data": rows, "total": total})
}

func (h *Handler) GetPaciente(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	p, err := h.store.GetPaciente(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
	}
	return c.JSON(http.StatusOK, p)
}

func pacienteFields(p models.Paciente) map[string]string {
	return map[string]string{"nombre": p.Nombre, "app": p.App, "sex": p.Sex, "fn": p.FN, "tel": p.Tel}
}

func (h *Handler) CreatePaciente(c echo.Context) error {
	var p models.Paciente
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	if err := requireFields(pacienteFields(p)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.store.CreatePaciente(p))
}

func (h *Handler) UpdatePaciente(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p models.Paciente
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	if err := requireFields(pacienteFields(p)); err != nil {
		return err
	}
	if err := h.store.UpdatePaciente(id, p); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
	}
	return c.JSON(http.StatusOK, models.MessageBody{Message: "Paciente actualizado exitosamente"})
}

func (h *Handler) DeletePaciente(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.store.DeletePaciente(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
	}
	return c.JSON(http.StatusOK, models.MessageBody{Message: "Paciente eliminado"})
}

// -- Medicos --

func (h *Handler) ListMedicos(c echo.Context) error {
	p := paramsFrom(c)
	rows, total := h.store.ListMedicos(p.page, p.limit, p.search)
	return c.JSON(http.StatusOK, map[string]interface{}{"data": rows, "total": total})
}

func (h *Handler) GetMedico(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	m, err := h.store.GetMedico(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Médico no encontrado")
	}
	return c.JSON(http.StatusOK, m)
}

func medicoFields(m models.Medico) map[string]string {
	return map[string]string{"clave": m.Clave, "nombre": m.Nombre, "app": m.App, "sex": m.Sex, "fn": m.FN, "tel": m.Tel, "email": m.Email}
}

func (h *Handler) CreateMedico(c echo.Context) error {
	var m models.Medico
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	if err := requireFields(medicoFields(m)); err != nil {
		return err
	}
	created, err := h.store.CreateMedico(m)
	if errors.Is(err, ErrDuplicate) {
		return echo.NewHTTPError(http.StatusConflict, "La clave ya está registrada")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateMedico(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var m models.Medico
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	if err := requireFields(medicoFields(m)); err != nil {
		return err
	}
	switch err := h.store.UpdateMedico(id, m); {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Médico no encontrado")
	case errors.Is(err, ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, "La clave ya está registrada")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, models.MessageBody{Message: "Médico actualizado exitosamente"})
}

func (h *Handler) DeleteMedico(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteMedico(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Médico no encontrado")
	}
	return c.JSON(http.StatusOK, models.MessageBody{Message: "Médico eliminado"})
}

// -- Citas --

func (h *Handler) ListCitas(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListCitas())
}

func (h *Handler) CreateCita(c echo.Context) error {
	var cita models.Cita
	if err := c.Bind(&cita); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	if strings.TrimSpace(cita.Fecha) == "" || strings.TrimSpace(cita.Hora) == "" || cita.IDPaciente == 0 || cita.IDMedico == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Todos los campos son requeridos")
	}
	created, err := h.store.CreateCita(cita)
	if errors.Is(err, ErrBadReference) {
		return echo.NewHTTPError(http.StatusBadRequest, "Paciente o médico inexistente")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}
