package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GyroTools/clinica-connector-go/clinica"
	"github.com/GyroTools/clinica-connector-go/clinica/forms"
	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

var pacientes = entity[models.Paciente]{
	singular: "paciente",
	plural:   "pacientes",
	header:   []string{"ID", "Nombre", "Sexo", "Nacimiento", "Teléfono"},
	row: func(p models.Paciente) []string {
		return []string{strconv.Itoa(p.ID), p.NombreCompleto(), p.Sex, models.FechaCorta(p.FN), p.Tel}
	},
	list:   (*clinica.Clinica).Pacientes,
	get:    (*clinica.Clinica).Paciente,
	remove: (*clinica.Clinica).DeletePaciente,
}

func pacientesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pacientes",
		Aliases: []string{"paciente"},
		Short:   "Consulta y registro de pacientes",
	}
	cmd.AddCommand(pacientes.listCmd(a))
	cmd.AddCommand(pacientes.browseCmd(a))
	cmd.AddCommand(pacientes.showCmd(a))
	cmd.AddCommand(pacienteAddCmd(a))
	cmd.AddCommand(pacienteEditCmd(a))
	cmd.AddCommand(pacientes.deleteCmd(a))
	return cmd
}

func pacienteFields(f *forms.PacienteForm) []field {
	return []field{
		{"nombre", "nombre(s)", &f.Nombre},
		{"app", "apellido paterno", &f.App},
		{"apm", "apellido materno", &f.Apm},
		{"sex", "sexo (M/F)", &f.Sex},
		{"fn", "fecha de nacimiento AAAA-MM-DD", &f.FN},
		{"tel", "teléfono", &f.Tel},
	}
}

func pacienteAddCmd(a *app) *cobra.Command {
	form := &forms.PacienteForm{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registra un paciente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Submit(cmd.Context(), a.api); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", form.Message, form.ID)
			return nil
		},
	}
	bindFields(cmd, pacienteFields(form))
	return cmd
}

func pacienteEditCmd(a *app) *cobra.Command {
	changes := &forms.PacienteForm{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Modifica un paciente; solo cambian los campos indicados",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res := a.api.Paciente(cmd.Context(), id)
			if !res.Success {
				return alert(res)
			}
			form := forms.EditPaciente(res.Data)
			overlay(cmd, pacienteFields(form), pacienteFields(changes))
			if err := form.Submit(cmd.Context(), a.api); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), form.Message)
			return nil
		},
	}
	bindFields(cmd, pacienteFields(changes))
	return cmd
}
