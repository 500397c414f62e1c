package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

// Route is where the shell goes after a successful login.
type Route string

const (
	RoutePacientes Route = "pacientes"
	RouteUsuarios  Route = "usuarios"
)

var ErrUnknownRole = errors.New("unknown role")

type AuthService interface {
	Login(ctx context.Context, email string, password string) models.Result[models.Login]
	Register(ctx context.Context, registro models.RegistroUsuario) models.Result[struct{}]
}

type LoginForm struct {
	Email    string
	Password string

	Message string
}

// Submit logs in and maps the role to a route. No session or credential
// outlives the call.
func (f *LoginForm) Submit(ctx context.Context, svc AuthService) (Route, error) {
	if err := Required(Field{"email", f.Email}, Field{"password", f.Password}); err != nil {
		f.Message = MsgCamposObligatorios
		return "", err
	}
	res := svc.Login(ctx, f.Email, f.Password)
	if !res.Success {
		f.Message = res.Message
		if f.Message == "" {
			f.Message = "Credenciales incorrectas"
		}
		return "", &Error{Message: f.Message, Err: res.Err}
	}
	route, err := RouteFor(res.Data.Rol)
	if err != nil {
		f.Message = err.Error()
		return "", &Error{Message: f.Message, Err: err}
	}
	f.Message = ""
	return route, nil
}

func RouteFor(rol string) (Route, error) {
	switch rol {
	case models.RolAdmin:
		return RoutePacientes, nil
	case models.RolUser:
		return RouteUsuarios, nil
	}
	return "", fmt.Errorf("Rol desconocido: %q: %w", rol, ErrUnknownRole)
}

type RegistroForm struct {
	Nombre   string
	App      string
	Apm      string
	Email    string
	Password string
	Rol      string

	Message string
}

func (f *RegistroForm) Submit(ctx context.Context, svc AuthService) error {
	err := Required(
		Field{"nombre", f.Nombre},
		Field{"app", f.App},
		Field{"apm", f.Apm},
		Field{"email", f.Email},
		Field{"password", f.Password},
		Field{"rol", f.Rol},
	)
	if err != nil {
		f.Message = MsgCamposObligatorios
		return err
	}
	res := svc.Register(ctx, models.RegistroUsuario{
		Nombre:   f.Nombre,
		App:      f.App,
		Apm:      f.Apm,
		Email:    f.Email,
		Password: f.Password,
		Rol:      f.Rol,
	})
	if !res.Success {
		f.Message = res.Message
		return &Error{Message: res.Message, Err: res.Err}
	}
	f.Message = "Usuario registrado exitosamente"
	return nil
}
