package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GyroTools/clinica-connector-go/clinica"
	"github.com/GyroTools/clinica-connector-go/clinica/forms"
	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

var medicos = entity[models.Medico]{
	singular: "médico",
	plural:   "médicos",
	header:   []string{"ID", "Clave", "Nombre", "Sexo", "Nacimiento", "Teléfono", "Email"},
	row: func(m models.Medico) []string {
		return []string{strconv.Itoa(m.ID), m.Clave, m.NombreCompleto(), m.Sex, models.FechaCorta(m.FN), m.Tel, m.Email}
	},
	list:   (*clinica.Clinica).Medicos,
	get:    (*clinica.Clinica).Medico,
	remove: (*clinica.Clinica).DeleteMedico,
}

func medicosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "medicos",
		Aliases: []string{"medico", "médicos"},
		Short:   "Consulta y registro de médicos",
	}
	cmd.AddCommand(medicos.listCmd(a))
	cmd.AddCommand(medicos.browseCmd(a))
	cmd.AddCommand(medicos.showCmd(a))
	cmd.AddCommand(medicoAddCmd(a))
	cmd.AddCommand(medicoEditCmd(a))
	cmd.AddCommand(medicos.deleteCmd(a))
	return cmd
}

func medicoFields(f *forms.MedicoForm) []field {
	return []field{
		{"clave", "clave del médico", &f.Clave},
		{"nombre", "nombre(s)", &f.Nombre},
		{"app", "apellido paterno", &f.App},
		{"apm", "apellido materno", &f.Apm},
		{"sex", "sexo (M/F)", &f.Sex},
		{"fn", "fecha de nacimiento AAAA-MM-DD", &f.FN},
		{"tel", "teléfono", &f.Tel},
		{"email", "correo electrónico", &f.Email},
	}
}

func medicoAddCmd(a *app) *cobra.Command {
	form := &forms.MedicoForm{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registra un médico",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Submit(cmd.Context(), a.api); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", form.Message, form.ID)
			return nil
		},
	}
	bindFields(cmd, medicoFields(form))
	return cmd
}

func medicoEditCmd(a *app) *cobra.Command {
	changes := &forms.MedicoForm{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Modifica un médico; solo cambian los campos indicados",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res := a.api.Medico(cmd.Context(), id)
			if !res.Success {
				return alert(res)
			}
			form := forms.EditMedico(res.Data)
			overlay(cmd, medicoFields(form), medicoFields(changes))
			if err := form.Submit(cmd.Context(), a.api); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), form.Message)
			return nil
		},
	}
	bindFields(cmd, medicoFields(changes))
	return cmd
}
