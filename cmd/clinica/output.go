package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/GyroTools/clinica-connector-go/clinica/forms"
	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

const (
	msgSinRegistros = "No hay registros"
	msgSinMas       = "No hay más registros"
)

// table prints aligned rows, preceded by the header unless it is nil.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if header != nil {
		fmt.Fprintln(tw, strings.Join(header, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// card prints one record as label/value lines.
func card(w io.Writer, labels []string, values []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, label := range labels {
		fmt.Fprintf(tw, "%s:\t%s\n", label, values[i])
	}
	return tw.Flush()
}

// alert turns a failed result into the error main prints before exiting.
func alert[T any](res models.Result[T]) error {
	return &forms.Error{Message: res.Message, Err: res.Err}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", arg)
	}
	return id, nil
}

// confirm asks a yes/no question on the command's input. Anything but an
// explicit yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (s/N): ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
