package clinica

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
	"github.com/GyroTools/clinica-connector-go/internals/http"
	"github.com/GyroTools/clinica-connector-go/internals/utils"
)

// Messages shown to the user when the server gave none of its own.
const (
	MsgConexion         = "Error de conexión con el servidor"
	MsgNoJSON           = "Error en el servidor: Respuesta no es JSON"
	MsgInesperada       = "Respuesta inesperada del servidor"
	MsgCamposRequeridos = "Todos los campos son requeridos"
)

var ErrMissingFields = errors.New("missing required fields")

type Clinica struct {
	Client *http.Client
	log    zerolog.Logger
}

type Option func(*options)

type options struct {
	logger  zerolog.Logger
	timeout time.Duration
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTimeout bounds each request. The default is no timeout at all.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func NewClinica(url string, verifyCert bool, opts ...Option) *Clinica {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	client := http.NewClient(url, verifyCert, http.WithLogger(o.logger), http.WithTimeout(o.timeout))
	return &Clinica{Client: client, log: o.logger}
}

// Create validates the URL and checks that the API answers.
func Create(ctx context.Context, url string, verifyCert bool, opts ...Option) (*Clinica, error) {
	url, err := utils.ValidateURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	c := NewClinica(url, verifyCert, opts...)
	if err := c.Client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("cannot connect to the clinic API: %w", err)
	}
	return c, nil
}

func Ping(ctx context.Context, url string) error {
	return http.NewClient(url, true).Ping(ctx)
}

func (c *Clinica) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx)
}

// failure turns any client error into a result carrying the message the user
// should see.
func failure[T any](log zerolog.Logger, op string, err error, fallback string) models.Result[T] {
	msg := fallback
	var statusErr *http.StatusError
	var decodeErr *http.DecodeError
	switch {
	case errors.Is(err, http.ErrNotJSON):
		msg = MsgNoJSON
	case errors.As(err, &statusErr):
		if statusErr.Message != "" {
			msg = statusErr.Message
		}
	case errors.As(err, &decodeErr):
		msg = MsgInesperada
	case http.IsNetwork(err):
		msg = MsgConexion
	}
	log.Warn().Err(err).Str("op", op).Str("message", msg).Msg("api call failed")
	return models.Fail[T](msg, err)
}

func listPath(base string, page int, search string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(models.PageSize))
	q.Set("search", search)
	return base + "?" + q.Encode()
}

func itemPath(base string, id int) string {
	return fmt.Sprintf("%s/%d", base, id)
}

func list[T any](ctx context.Context, c *Clinica, op string, base string, page int, search string, fallback string) models.Result[[]T] {
	var body models.Page[T]
	if err := c.Client.GetAndParse(ctx, listPath(base, page, search), &body); err != nil {
		return failure[[]T](c.log, op, err, fallback)
	}
	if body.Data == nil {
		return failure[[]T](c.log, op, &http.DecodeError{Path: base, Err: errors.New("missing data array")}, fallback)
	}
	r := models.Ok(*body.Data)
	r.Total = int(body.Total)
	return r
}

type keyed interface {
	Key() int
}

func detail[T keyed](ctx context.Context, c *Clinica, op string, base string, id int, fallback string) models.Result[T] {
	var record T
	if err := c.Client.GetAndParse(ctx, itemPath(base, id), &record); err != nil {
		return failure[T](c.log, op, err, fallback)
	}
	if record.Key() == 0 {
		return failure[T](c.log, op, &http.DecodeError{Path: base, Err: errors.New("record without id")}, fallback)
	}
	return models.Ok(record)
}

func create[T any](ctx context.Context, c *Clinica, op string, base string, payload T, fallback string) models.Result[T] {
	var created T
	if err := c.Client.PostAndParse(ctx, base, payload, &created); err != nil {
		return failure[T](c.log, op, err, fallback)
	}
	return models.Ok(created)
}

func update(ctx context.Context, c *Clinica, op string, base string, id int, payload interface{}, ok string, fallback string) models.Result[struct{}] {
	var body models.MessageBody
	if err := c.Client.PutAndParse(ctx, itemPath(base, id), payload, &body); err != nil {
		return failure[struct{}](c.log, op, err, fallback)
	}
	r := models.Ok(struct{}{})
	r.Message = ok
	if body.Message != "" {
		r.Message = body.Message
	}
	return r
}

func remove(ctx context.Context, c *Clinica, op string, base string, id int, ok string) models.Result[struct{}] {
	var body models.MessageBody
	if err := c.Client.DeleteAndParse(ctx, itemPath(base, id), &body); err != nil {
		return failure[struct{}](c.log, op, err, "Error al eliminar")
	}
	r := models.Ok(struct{}{})
	r.Message = ok
	if body.Message != "" {
		r.Message = body.Message
	}
	return r
}
