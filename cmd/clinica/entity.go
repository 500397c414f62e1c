package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GyroTools/clinica-connector-go/clinica"
	"github.com/GyroTools/clinica-connector-go/clinica/loader"
	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

// entity wires the read and delete commands shared by patients and doctors.
// The API calls are method expressions because the client only exists once
// the persistent flags were parsed.
type entity[T loader.Keyed] struct {
	singular string
	plural   string
	header   []string
	row      func(T) []string

	list   func(c *clinica.Clinica, ctx context.Context, page int, search string) models.Result[[]T]
	get    func(c *clinica.Clinica, ctx context.Context, id int) models.Result[T]
	remove func(c *clinica.Clinica, ctx context.Context, id int) models.Result[struct{}]
}

func (e entity[T]) rows(items []T) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = e.row(item)
	}
	return rows
}

func (e entity[T]) listCmd(a *app) *cobra.Command {
	var (
		page   int
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("Muestra una página de %s", e.plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := e.list(a.api, cmd.Context(), page, search)
			if !res.Success {
				return alert(res)
			}
			out := cmd.OutOrStdout()
			if len(res.Data) == 0 {
				fmt.Fprintln(out, msgSinRegistros)
				return nil
			}
			if err := table(out, e.header, e.rows(res.Data)); err != nil {
				return err
			}
			fmt.Fprintf(out, "Página %d, %d de %d\n", page, len(res.Data), res.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "página")
	cmd.Flags().StringVar(&search, "search", "", "texto a buscar en nombre y apellidos")
	return cmd
}

const browseHelp = "Enter: más registros, /texto: buscar, / : quitar búsqueda, x ID: eliminar, q: salir"

// browseCmd is the scrolling list: every Enter is the scroll threshold being
// reached.
func (e entity[T]) browseCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: fmt.Sprintf("Recorre los %s con carga incremental", e.plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			l := loader.New[T](func(ctx context.Context, page int, search string) models.Result[[]T] {
				return e.list(a.api, ctx, page, search)
			}, loader.WithLogger(a.log))

			var err error
			if search != "" {
				err = l.Search(ctx, search)
			} else {
				err = l.Reset(ctx)
			}
			if err != nil {
				return err
			}
			if err := e.render(out, l, 0); err != nil {
				return err
			}
			fmt.Fprintln(out, browseHelp)

			in := bufio.NewScanner(cmd.InOrStdin())
			for in.Scan() {
				line := strings.TrimSpace(in.Text())
				switch {
				case line == "q":
					return nil
				case line == "":
					before := len(l.Items())
					err = l.LoadMore(ctx)
					if err == nil {
						err = e.render(out, l, before)
					}
				case strings.HasPrefix(line, "/"):
					err = l.Search(ctx, strings.TrimSpace(line[1:]))
					if err == nil {
						err = e.render(out, l, 0)
					}
				case strings.HasPrefix(line, "x "):
					err = e.removeRow(ctx, a, out, l, strings.TrimSpace(line[2:]))
				default:
					fmt.Fprintln(out, browseHelp)
					continue
				}
				switch {
				case errors.Is(err, loader.ErrExhausted):
					fmt.Fprintln(out, msgSinMas)
				case err != nil:
					fmt.Fprintln(out, "Error:", err)
				}
			}
			return in.Err()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "búsqueda inicial")
	return cmd
}

// render prints the rows from index from on, then the loader status.
func (e entity[T]) render(out io.Writer, l *loader.Loader[T], from int) error {
	state := l.Snapshot()
	if l.Empty() {
		fmt.Fprintln(out, msgSinRegistros)
		return nil
	}
	if from < len(state.Items) {
		// appended pages continue the table printed before
		var header []string
		if from == 0 {
			header = e.header
		}
		if err := table(out, header, e.rows(state.Items[from:])); err != nil {
			return err
		}
	}
	status := fmt.Sprintf("%d de %d", len(state.Items), state.Total)
	if state.Search != "" {
		status += fmt.Sprintf(" (búsqueda: %q)", state.Search)
	}
	fmt.Fprintln(out, status)
	return nil
}

func (e entity[T]) removeRow(ctx context.Context, a *app, out io.Writer, l *loader.Loader[T], arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	res := e.remove(a.api, ctx, id)
	if !res.Success {
		return alert(res)
	}
	l.Remove(id)
	fmt.Fprintln(out, res.Message)
	return nil
}

func (e entity[T]) showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: fmt.Sprintf("Muestra un %s", e.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res := e.get(a.api, cmd.Context(), id)
			if !res.Success {
				return alert(res)
			}
			return card(cmd.OutOrStdout(), e.header, e.row(res.Data))
		},
	}
}

func (e entity[T]) deleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Elimina un %s", e.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("¿Eliminar %s %d?", e.singular, id)) {
				fmt.Fprintln(out, "Cancelado")
				return nil
			}
			res := e.remove(a.api, cmd.Context(), id)
			if !res.Success {
				return alert(res)
			}
			fmt.Fprintln(out, res.Message)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	return cmd
}

// field is one form input exposed as a string flag.
type field struct {
	name  string
	usage string
	ptr   *string
}

func bindFields(cmd *cobra.Command, fields []field) {
	for _, f := range fields {
		cmd.Flags().StringVar(f.ptr, f.name, "", f.usage)
	}
}

// overlay copies the flags given on the command line from src onto dst.
// Both slices list the same fields in the same order.
func overlay(cmd *cobra.Command, dst []field, src []field) {
	for i, f := range dst {
		if cmd.Flags().Changed(f.name) {
			*f.ptr = *src[i].ptr
		}
	}
}
