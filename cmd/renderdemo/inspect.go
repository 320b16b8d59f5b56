package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/internal/shared/storage/object/local"
	"resume-builder/resume/inspect"
)

func newInspectCmd() *cobra.Command {
	var (
		showText bool
		storeDir string
	)
	cmd := &cobra.Command{
		Use:   "inspect <file.pdf | storage-key>",
		Short: "Print the page count (and optionally the text) of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				info inspect.Info
				err  error
			)
			if dir := strings.TrimSpace(storeDir); dir != "" {
				info, err = inspect.InspectStored(cmd.Context(), local.New(dir), args[0])
			} else {
				info, err = inspectFile(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pages: %d\n", info.Pages)
			if showText {
				fmt.Fprintln(cmd.OutOrStdout(), info.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showText, "text", false, "print extracted text")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "local object store root; the argument is then read as a storage key")
	return cmd
}
