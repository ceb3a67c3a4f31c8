package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/portal"
	"github.com/nulldns/subdns-portal/internal/record"
)

var (
	// ErrLoginRequired is returned when the backend asks for a login.
	ErrLoginRequired = errors.New("login required, pass a valid --session")

	// ErrRefused is returned when the backend did not carry out a change.
	ErrRefused = errors.New("refused by the backend")
)

func init() { //nolint: gochecknoinits
	recordsCmd.Flags().StringVar(&recordType, "type", "", "Show only this record type with its placeholder")
	leaveCmd.Flags().StringVar(&leaveConfirm, "confirm", "", "Confirmation phrase")

	rootCmd.AddCommand(
		searchCmd,
		recordsCmd,
		setCmd,
		deleteCmd,
		domainsCmd,
		renewCmd,
		whoamiCmd,
		logoutCmd,
		leaveCmd,
	)
}

// controller builds the controller of the CLI session.
func controller() (*portal.Controller, error) {
	client, err := backend.New(cfg.Backend)
	if err != nil {
		return nil, err
	}

	return portal.New(client.For(backend.Session(session())), portal.OptionsFrom(cfg.Portal)), nil
}

// reportedError is an error whose notice was printed already.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// report prints the notice of eff and turns the outcome into the exit status.
func report(cmd *cobra.Command, eff portal.Effect, err error) error {
	if eff.Notice != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), eff.Notice)
	}

	if err != nil {
		if !portal.IsInputError(err) {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
		}

		if eff.Notice != "" {
			return reportedError{err}
		}

		return err
	}

	if eff.Redirect == portal.ViewAuth {
		return ErrLoginRequired
	}

	return nil
}

// reportChange is report for operations that change backend state:
// anything but a confirmed change fails the command.
func reportChange(cmd *cobra.Command, eff portal.Effect, err error) error {
	if rerr := report(cmd, eff, err); rerr != nil {
		return rerr
	}

	if !eff.Done {
		return reportedError{ErrRefused}
	}

	return nil
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

var (
	recordType   string
	leaveConfirm string

	searchCmd = &cobra.Command{
		Use:   "search NAME",
		Short: "Show below which zones NAME can be registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			res, eff, err := ctrl.Search(cmd.Context(), args[0])
			if rerr := report(cmd, eff, err); rerr != nil {
				return rerr
			}

			tw := table(cmd.OutOrStdout())
			for _, row := range res.Rows {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", row.FullDomain, row.Verdict)
			}

			return tw.Flush()
		},
	}

	recordsCmd = &cobra.Command{
		Use:   "records SUB ZONE",
		Short: "Show the records of SUB.ZONE",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			sel := portal.Selection{SubDomain: args[0], Zone: args[1]}

			d, eff, err := ctrl.OpenDetail(cmd.Context(), sel, portal.ModeEdit)
			if rerr := report(cmd, eff, err); rerr != nil {
				return rerr
			}

			out := cmd.OutOrStdout()

			if recordType != "" {
				d = d.SelectType(recordType)
				_, _ = fmt.Fprintf(out, "%s\t%s\n", d.Type, d.Value)

				if d.Value == "" {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), d.Placeholder)
				}

				return nil
			}

			tw := table(out)
			for _, e := range d.Records.Sorted() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.Type, e.Content)
			}

			return tw.Flush()
		},
	}

	setCmd = &cobra.Command{
		Use:   "set SUB ZONE TYPE CONTENT",
		Short: "Register or replace the TYPE record of SUB.ZONE",
		Args:  cobra.ExactArgs(4), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			in := portal.Submission{SubDomain: args[0], Zone: args[1], Type: args[2], Content: args[3]}

			if werr := record.Check(in.Type, in.Content); werr != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), werr)
			}

			eff, err := ctrl.Submit(cmd.Context(), in)

			return reportChange(cmd, eff, err)
		},
	}

	deleteCmd = &cobra.Command{
		Use:   "delete SUB ZONE",
		Short: "Delete SUB.ZONE with all its records",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			eff, err := ctrl.Delete(cmd.Context(), portal.Selection{SubDomain: args[0], Zone: args[1]})

			return reportChange(cmd, eff, err)
		},
	}

	domainsCmd = &cobra.Command{
		Use:   "domains",
		Short: "List the owned domains and their expiration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			list, err := ctrl.Owned(cmd.Context())
			if err != nil {
				return report(cmd, portal.Effect{Notice: list.Message}, err)
			}

			if list.LoginRequired {
				return report(cmd, portal.Effect{Notice: list.Message, Redirect: portal.ViewAuth}, nil)
			}

			if list.Message != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), list.Message)
			}

			tw := table(cmd.OutOrStdout())

			for _, d := range list.Domains {
				expiry := "-"
				if d.HasExpiration() {
					expiry = fmt.Sprintf("%s (%d일 남음)", d.Expiration.Format("2006-01-02"), d.DaysLeft)
				}

				mark := ""
				if d.NearExpiry {
					mark = "만료 임박"
				}

				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", d.FullDomain(), expiry, mark)
			}

			return tw.Flush()
		},
	}

	renewCmd = &cobra.Command{
		Use:   "renew SUB ZONE",
		Short: "Extend the expiration of SUB.ZONE",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			eff, err := ctrl.Renew(cmd.Context(), portal.Selection{SubDomain: args[0], Zone: args[1]})

			return reportChange(cmd, eff, err)
		},
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the user of the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			v, err := ctrl.Identify(cmd.Context())
			if err != nil {
				return report(cmd, portal.Effect{Notice: portal.MsgTransport}, err)
			}

			if !v.Authenticated {
				return report(cmd, portal.Effect{Notice: portal.MsgLoginRequired, Redirect: portal.ViewAuth}, nil)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v.ID)

			return nil
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			eff, err := ctrl.Logout(cmd.Context())

			return report(cmd, eff, err)
		},
	}

	leaveCmd = &cobra.Command{
		Use:   "leave",
		Short: "Delete the account and all its domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := controller()
			if err != nil {
				return err
			}

			eff, err := ctrl.Leave(cmd.Context(), leaveConfirm)

			return reportChange(cmd, eff, err)
		},
	}
)
