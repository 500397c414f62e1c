package clinica

import (
	"context"
	"errors"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

type loginBody struct {
	models.Login
	Msg string `json:"msg"`
}

// Login succeeds only when the server answers 2xx with a non-zero id_login.
// The returned role is all the caller gets; nothing is stored.
func (c *Clinica) Login(ctx context.Context, email string, password string) models.Result[models.Login] {
	var body loginBody
	err := c.Client.PostAndParse(ctx, models.LoginURL, models.Credenciales{Email: email, Password: password}, &body)
	if err != nil {
		return failure[models.Login](c.log, "login", err, "Error en login")
	}
	if body.IDLogin == 0 {
		msg := body.Msg
		if msg == "" {
			msg = "Error en login"
		}
		return failure[models.Login](c.log, "login", errors.New("no id_login in response"), msg)
	}
	return models.Ok(body.Login)
}

func (c *Clinica) Register(ctx context.Context, registro models.RegistroUsuario) models.Result[struct{}] {
	if err := c.Client.PostAndParse(ctx, models.RegistroURL, registro, nil); err != nil {
		return failure[struct{}](c.log, "register", err, "Error en registro")
	}
	return models.Ok(struct{}{})
}
