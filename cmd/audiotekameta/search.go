// cmd/audiotekameta/search.go
package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/audiotekameta/pkg/api"
)

func newSearchCmd(configFile *string) *cobra.Command {
	var (
		o      overrides
		author string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Run one search and print the response JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile, o)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.provider.Search(cmd.Context(), strings.Join(args, " "), author)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(api.NewSearchResponse(records))
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "author hint")
	cmd.Flags().StringVarP(&o.language, "language", "l", "", "catalog language: pl or cz")
	return cmd
}
