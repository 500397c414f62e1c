package models

const (
	LoginURL    = "/api/redirige"
	RegistroURL = "/api/registros"

	RolAdmin = "admin"
	RolUser  = "user"
)

type Credenciales struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is the answer of a successful login. There is no token: the role is
// the only thing the client acts on.
type Login struct {
	IDLogin int    `json:"id_login"`
	Rol     string `json:"rol"`
}

type RegistroUsuario struct {
	Nombre   string `json:"nombre"`
	App      string `json:"app"`
	Apm      string `json:"apm"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}
