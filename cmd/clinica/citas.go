package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/GyroTools/clinica-connector-go/clinica/forms"
	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

func citasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "citas",
		Aliases: []string{"cita", "agenda"},
		Short:   "Agenda de citas",
	}
	cmd.AddCommand(citasListCmd(a))
	cmd.AddCommand(citaAddCmd(a))
	cmd.AddCommand(horariosCmd())
	return cmd
}

var citaHeader = []string{"ID", "Fecha", "Hora", "Paciente", "Médico", "Detalle"}

func citaRow(c models.Cita) []string {
	paciente := c.PacienteNombre
	if paciente == "" {
		paciente = "#" + strconv.Itoa(c.IDPaciente)
	}
	medico := c.MedicoNombre
	if medico == "" {
		medico = "#" + strconv.Itoa(c.IDMedico)
	}
	return []string{strconv.Itoa(c.ID), models.FechaCorta(c.Fecha), c.Hora, paciente, medico, c.Detalle}
}

func citasListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Muestra todas las citas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agenda := forms.NewAgenda(a.api)
			if err := agenda.Load(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			citas := agenda.Citas()
			if len(citas) == 0 {
				fmt.Fprintln(out, msgSinRegistros)
				return nil
			}
			rows := make([][]string, len(citas))
			for i, c := range citas {
				rows[i] = citaRow(c)
			}
			return table(out, citaHeader, rows)
		},
	}
}

func citaAddCmd(a *app) *cobra.Command {
	var (
		fecha string
		form  = forms.NewCitaForm(time.Now())
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Agenda una cita",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fecha != "" {
				day, err := time.ParseInLocation(models.DateLayout, fecha, time.Local)
				if err != nil {
					return fmt.Errorf("fecha inválida %q, se espera AAAA-MM-DD", fecha)
				}
				form.Fecha = day
			}
			if !horarioValido(form.Hora) {
				return fmt.Errorf("hora fuera de horario: %q (ver \"citas horarios\")", form.Hora)
			}

			agenda := forms.NewAgenda(a.api)
			if err := agenda.Load(cmd.Context()); err != nil {
				return err
			}
			created, err := agenda.Schedule(cmd.Context(), &form)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Cita creada exitosamente")
			return table(out, citaHeader, [][]string{citaRow(created)})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&fecha, "fecha", "", "fecha AAAA-MM-DD (hoy si se omite)")
	flags.StringVar(&form.Hora, "hora", form.Hora, "hora HH:MM")
	flags.IntVar(&form.IDPaciente, "paciente", 0, "id del paciente")
	flags.IntVar(&form.IDMedico, "medico", 0, "id del médico")
	flags.StringVar(&form.Detalle, "detalle", "", "motivo de la cita")
	return cmd
}

func horarioValido(hora string) bool {
	for _, h := range forms.Horarios() {
		if h == hora {
			return true
		}
	}
	return false
}

func horariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "horarios",
		Short: "Lista las horas disponibles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, h := range forms.Horarios() {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
		},
	}
}
