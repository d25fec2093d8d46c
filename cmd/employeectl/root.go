package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/csg33k/employee-registry/internal/adapters/employeeapi"
	"github.com/csg33k/employee-registry/internal/config"
	"github.com/csg33k/employee-registry/internal/ports"
)

// errInvalid is returned after the validation messages have been printed.
var errInvalid = errors.New("employee record is invalid")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	v      *viper.Viper

	// Set by the root command before any subcommand runs unless a test
	// injected them.
	cfg    *config.Config
	svc    ports.EmployeeService
	prompt prompter
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	v := viper.New()
	v.AutomaticEnv()
	config.Defaults(v)
	return &app{in: in, out: out, errOut: errOut, v: v}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "employeectl",
		Short:         "Manage employee records through the employees API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromViper(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.svc == nil {
				level, _ := cfg.Level()
				logger := slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
				a.svc = employeeapi.New(cfg.APIURL(),
					employeeapi.WithTimeout(cfg.APITimeout),
					employeeapi.WithLogger(logger))
			}
			if a.prompt == nil {
				a.prompt = surveyPrompter{}
			}
			return nil
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String("api-url", "", "employees collection URL (env EMPLOYEES_API_URL)")
	flags.Duration("timeout", 0, "per-request timeout (env API_TIMEOUT)")
	flags.String("email-domain", "", "required employee email domain (env EMAIL_DOMAIN)")
	_ = a.v.BindPFlag("EMPLOYEES_API_URL", flags.Lookup("api-url"))
	_ = a.v.BindPFlag("API_TIMEOUT", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("EMAIL_DOMAIN", flags.Lookup("email-domain"))

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// execute runs the command line and returns the process exit code. Errors
// are printed to errOut, except errInvalid whose messages are already there.
func execute(a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errInvalid) {
		fmt.Fprintln(a.errOut, "employeectl:", err)
	}
	return 1
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return id, nil
}
