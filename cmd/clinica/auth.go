package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GyroTools/clinica-connector-go/clinica/forms"
	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

func loginCmd(a *app) *cobra.Command {
	form := &forms.LoginForm{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y muestra la pantalla que corresponde al rol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if form.Password == "" {
				fmt.Fprint(out, "Contraseña: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				form.Password = strings.TrimRight(line, "\r\n")
			}
			route, err := form.Submit(cmd.Context(), a.api)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Bienvenido. Pantalla: %s\n", route)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "correo")
	cmd.Flags().StringVar(&form.Password, "password", "", "contraseña (se pide si se omite)")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	form := &forms.RegistroForm{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registra un usuario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Submit(cmd.Context(), a.api); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), form.Message)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&form.Nombre, "nombre", "", "nombre(s)")
	flags.StringVar(&form.App, "app", "", "apellido paterno")
	flags.StringVar(&form.Apm, "apm", "", "apellido materno")
	flags.StringVar(&form.Email, "email", "", "correo")
	flags.StringVar(&form.Password, "password", "", "contraseña")
	flags.StringVar(&form.Rol, "rol", models.RolUser, "admin o user")
	return cmd
}
