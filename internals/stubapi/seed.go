package stubapi

import "github.com/GyroTools/clinica-connector-go/clinica/models"

// Seed loads a small demo data set and two accounts:
// admin@clinica.test / admin123 (admin) and recepcion@clinica.test / user123 (user).
func Seed(s *Store) error {
	pacientes := []models.Paciente{
		{Nombre: "Ana", App: "García", Apm: "López", Sex: "F", FN: "1990-04-02", Tel: "4421234567"},
		{Nombre: "Luis", App: "Pérez", Apm: "Soto", Sex: "M", FN: "1985-11-19", Tel: "4429876543"},
		{Nombre: "María", App: "Hernández", Apm: "Ruiz", Sex: "F", FN: "1972-06-30", Tel: "4421112233"},
		{Nombre: "José", App: "Martínez", Apm: "Cruz", Sex: "M", FN: "2001-01-15", Tel: "4423334455"},
		{Nombre: "Lucía", App: "Ramírez", Apm: "Díaz", Sex: "F", FN: "1998-09-08", Tel: "4425556677"},
		{Nombre: "Carlos", App: "Torres", Apm: "Vega", Sex: "M", FN: "1966-03-21", Tel: "4427778899"},
		{Nombre: "Elena", App: "Flores", Apm: "Morales", Sex: "F", FN: "1993-12-01", Tel: "4420001122"},
		{Nombre: "Jorge", App: "Castillo", Apm: "Reyes", Sex: "M", FN: "1979-07-14", Tel: "4421212121"},
	}
	for _, p := range pacientes {
		s.CreatePaciente(p)
	}

	medicos := []models.Medico{
		{Clave: "MED-001", Nombre: "Rosa", App: "Méndez", Apm: "Ortiz", Sex: "F", FN: "1975-02-10", Tel: "4426001001", Email: "rosa.mendez@clinica.test"},
		{Clave: "MED-002", Nombre: "Arturo", App: "Navarro", Apm: "Gil", Sex: "M", FN: "1968-08-25", Tel: "4426001002", Email: "arturo.navarro@clinica.test"},
		{Clave: "MED-003", Nombre: "Sofía", App: "Campos", Apm: "Luna", Sex: "F", FN: "1988-05-05", Tel: "4426001003", Email: "sofia.campos@clinica.test"},
	}
	for _, m := range medicos {
		if _, err := s.CreateMedico(m); err != nil {
			return err
		}
	}

	if _, err := s.CreateCita(models.Cita{Fecha: "2025-03-10", Hora: "10:00", IDPaciente: 1, IDMedico: 1, Detalle: "Consulta general"}); err != nil {
		return err
	}

	accounts := []models.RegistroUsuario{
		{Nombre: "Admin", App: "Clínica", Email: "admin@clinica.test", Password: "admin123", Rol: models.RolAdmin},
		{Nombre: "Recepción", App: "Clínica", Email: "recepcion@clinica.test", Password: "user123", Rol: models.RolUser},
	}
	for _, a := range accounts {
		if _, err := s.Register(a); err != nil {
			return err
		}
	}
	return nil
}
