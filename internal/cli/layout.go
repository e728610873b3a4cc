package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// LayoutOptions holds flags for the layout command.
type LayoutOptions struct {
	*RootOptions
	Credential credentialFlags
	Label      labelFlags
}

// LayoutResult is the layout command's JSON output.
type LayoutResult struct {
	Fingerprint string          `json:"fingerprint"`
	Page        json.RawMessage `json:"page"`
}

// NewLayoutCommand creates the layout command.
func NewLayoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LayoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the draw instructions of a page without rendering it",
		Long: `Show the draw instructions of a page without writing a PDF.

Text output lists one instruction per line in draw order; JSON output is
the canonical page with its fingerprint. Useful to check placement and
font sizes after changing the config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	credCmd := &cobra.Command{
		Use:           "credential",
		Short:         "Lay out a reader credential",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(opts, cmd, ir.CredentialPage)
		},
	}
	opts.Credential.bind(credCmd)

	labelCmd := &cobra.Command{
		Use:           "label",
		Short:         "Lay out a book label",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(opts, cmd, ir.BookLabelPage)
		},
	}
	opts.Label.bind(labelCmd)

	cmd.AddCommand(credCmd, labelCmd)
	return cmd
}

func runLayout(opts *LayoutOptions, cmd *cobra.Command, profile ir.PageProfile) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	sess, err := newSession(opts.RootOptions)
	if err != nil {
		return fail(formatter, "loading config", err)
	}

	var instrs []ir.DrawInstruction
	if profile.Name == ir.CredentialPage.Name {
		instrs = sess.Engine.Credential(opts.Credential.record())
	} else {
		instrs = sess.Engine.BookLabel(opts.Label.record())
	}

	page, err := ir.MarshalPage(profile, instrs)
	if err != nil {
		return fail(formatter, "encoding page", err)
	}
	fp, err := ir.Fingerprint(profile, instrs)
	if err != nil {
		return fail(formatter, "fingerprinting page", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(LayoutResult{Fingerprint: fp, Page: page})
	}
	fmt.Fprintf(formatter.Writer, "%s %s x %s mm\n", profile.Name, profile.Width, profile.Height)
	if err := ir.Dump(formatter.Writer, instrs); err != nil {
		return err
	}
	fmt.Fprintf(formatter.Writer, "fingerprint %s\n", fp)
	return nil
}
