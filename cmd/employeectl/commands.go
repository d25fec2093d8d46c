package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/csg33k/employee-registry/internal/domain"
	"github.com/csg33k/employee-registry/internal/employeeform"
)

func newListCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if output != "table" {
				return a.write(output, list)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tCONTACT\tSKILLS")
			for _, e := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
					e.ID, e.FullName, e.Email, orDash(e.PhoneValue()), e.ContactPreference, len(e.Skills))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "table, yaml or json")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Print one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := a.svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.write(output, e)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "yaml or json")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		file        string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee from a YAML file or interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				e   *domain.Employee
				err error
			)
			switch {
			case interactive:
				e, err = fillInteractively(a.prompt, a.cfg.EmailDomain)
			case file != "":
				e, err = a.readRecord(file)
				if err == nil {
					e.ID = 0
					err = a.check(e)
				}
			default:
				return errors.New("one of --file or --interactive is required")
			}
			if err != nil {
				return err
			}
			if err := a.svc.Create(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created employee %q\n", e.FullName)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML record file, - for stdin")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for every field")
	cmd.MarkFlagsMutuallyExclusive("file", "interactive")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace an employee with the contents of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := a.readRecord(file)
			if err != nil {
				return err
			}
			e.ID = id
			if err := a.check(e); err != nil {
				return err
			}
			if err := a.svc.Update(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "updated employee %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML record file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted employee %d\n", id)
			return nil
		},
	}
}

// readRecord decodes a YAML employee from path ("-" reads stdin).
func (a *app) readRecord(path string) (*domain.Employee, error) {
	var r io.Reader = a.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	e := domain.NewEmployee()
	if err := dec.Decode(e); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if e.ContactPreference == "" {
		e.ContactPreference = domain.DefaultContactPreference
	}
	return e, nil
}

// check runs the form validation locally and prints every message.
func (a *app) check(e *domain.Employee) error {
	msgs := employeeform.ValidateRecord(e, a.cfg.EmailDomain)
	if len(msgs) == 0 {
		return nil
	}
	paths := make([]string, 0, len(msgs))
	for p := range msgs {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	for _, p := range paths {
		fmt.Fprintf(a.errOut, "%s: %s\n", p, msgs[p])
	}
	return errInvalid
}

func (a *app) write(format string, v any) error {
	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
