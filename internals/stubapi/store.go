package stubapi

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrBadReference  = errors.New("unknown reference")
	ErrBadCredential = errors.New("bad credentials")
)

type usuario struct {
	id   int
	reg  models.RegistroUsuario
	hash []byte
}

// Store keeps every record in memory. It is safe for concurrent handlers.
type Store struct {
	mu         sync.RWMutex
	pacientes  map[int]models.Paciente
	medicos    map[int]models.Medico
	citas      []models.Cita
	usuarios   map[string]usuario
	nextID     map[string]int
	bcryptCost int
}

func NewStore() *Store {
	return &Store{
		pacientes:  map[int]models.Paciente{},
		medicos:    map[int]models.Medico{},
		usuarios:   map[string]usuario{},
		nextID:     map[string]int{},
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *Store) next(kind string) int {
	s.nextID[kind]++
	return s.nextID[kind]
}

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func paginate[T any](rows []T, page int, limit int) []T {
	start := (page - 1) * limit
	if start >= len(rows) {
		return []T{}
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ListPacientes returns one page ordered by id and the number of matches.
func (s *Store) ListPacientes(page int, limit int, search string) ([]models.Paciente, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []models.Paciente
	for _, p := range s.pacientes {
		if matches(search, p.Nombre, p.App, p.Apm) {
			rows = append(rows, p)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return paginate(rows, page, limit), len(rows)
}

func (s *Store) GetPaciente(id int) (models.Paciente, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pacientes[id]
	if !ok {
		return models.Paciente{}, ErrNotFound
	}
	return p, nil
}

func (s *Store) CreatePaciente(p models.Paciente) models.Paciente {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.next("paciente")
	s.pacientes[p.ID] = p
	return p
}

func (s *Store) UpdatePaciente(id int, p models.Paciente) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pacientes[id]; !ok {
		return ErrNotFound
	}
	p.ID = id
	s.pacientes[id] = p
	return nil
}

func (s *Store) DeletePaciente(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pacientes[id]; !ok {
		return ErrNotFound
	}
	delete(s.pacientes, id)
	return nil
}

func (s *Store) ListMedicos(page int, limit int, search string) ([]models.Medico, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []models.Medico
	for _, m := range s.medicos {
		if matches(search, m.Nombre, m.App, m.Apm, m.Clave) {
			rows = append(rows, m)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return paginate(rows, page, limit), len(rows)
}

func (s *Store) GetMedico(id int) (models.Medico, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.medicos[id]
	if !ok {
		return models.Medico{}, ErrNotFound
	}
	return m, nil
}

func (s *Store) claveTaken(clave string, except int) bool {
	for id, m := range s.medicos {
		if id != except && strings.EqualFold(m.Clave, clave) {
			return true
		}
	}
	return false
}

// CreateMedico rejects a clave already used by another doctor.
func (s *Store) CreateMedico(m models.Medico) (models.Medico, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claveTaken(m.Clave, 0) {
		return models.Medico{}, ErrDuplicate
	}
	m.ID = s.next("medico")
	s.medicos[m.ID] = m
	return m, nil
}

func (s *Store) UpdateMedico(id int, m models.Medico) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.medicos[id]; !ok {
		return ErrNotFound
	}
	if s.claveTaken(m.Clave, id) {
		return ErrDuplicate
	}
	m.ID = id
	s.medicos[id] = m
	return nil
}

func (s *Store) DeleteMedico(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.medicos[id]; !ok {
		return ErrNotFound
	}
	delete(s.medicos, id)
	return nil
}

func (s *Store) ListCitas() []models.Cita {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Cita{}, s.citas...)
}

// CreateCita checks that both referenced records exist.
func (s *Store) CreateCita(c models.Cita) (models.Cita, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pacientes[c.IDPaciente]; !ok {
		return models.Cita{}, ErrBadReference
	}
	if _, ok := s.medicos[c.IDMedico]; !ok {
		return models.Cita{}, ErrBadReference
	}
	c.ID = s.next("cita")
	c.PacienteNombre = ""
	c.MedicoNombre = ""
	s.citas = append(s.citas, c)
	return c, nil
}

// Register stores a user with a bcrypt hash of the password.
func (s *Store) Register(reg models.RegistroUsuario) (models.Login, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.bcryptCost)
	if err != nil {
		return models.Login{}, err
	}
	if reg.Rol == "" {
		reg.Rol = models.RolUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usuarios[email]; ok {
		return models.Login{}, ErrDuplicate
	}
	u := usuario{id: s.next("usuario"), reg: reg, hash: hash}
	u.reg.Password = ""
	s.usuarios[email] = u
	return models.Login{IDLogin: u.id, Rol: reg.Rol}, nil
}

func (s *Store) Login(email string, password string) (models.Login, error) {
	s.mu.RLock()
	u, ok := s.usuarios[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return models.Login{}, ErrBadCredential
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return models.Login{}, ErrBadCredential
	}
	return models.Login{IDLogin: u.id, Rol: u.reg.Rol}, nil
}
