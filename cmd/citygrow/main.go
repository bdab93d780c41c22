package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"citygrow/internal/app"
	"citygrow/internal/core"
	_ "citygrow/internal/scenes/citygrow"
)

func main() {
	cfg := app.NewConfig()

	rootCmd := &cobra.Command{
		Use:          "citygrow",
		Short:        "Animated procedural city wallpaper",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cfg)
		},
	}
	cfg.Bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "params",
		Short: "List the tunables of the selected scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, ok := core.Scenes()[cfg.Scene]
			if !ok {
				return fmt.Errorf("unknown scene %q", cfg.Scene)
			}
			scene := factory(cfg.Width, cfg.Height, cfg.Options())
			prov, ok := scene.(core.ParametersProvider)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "scene %q exposes no tunables\n", cfg.Scene)
				return nil
			}
			printParams(cmd.OutOrStdout(), prov.Parameters())
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "scenes",
		Short: "List the registered scenes",
		Run: func(cmd *cobra.Command, args []string) {
			names := make([]string, 0, len(core.Scenes()))
			for name := range core.Scenes() {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printParams(out io.Writer, snap core.ParameterSnapshot) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer w.Flush()
	for _, group := range snap.Groups {
		fmt.Fprintf(w, "%s\t\t%s\n", group.Name, group.Summary)
		for _, p := range group.Params {
			fmt.Fprintf(w, "  %s\t%s\t%s (%s)\n", p.Key, p.Value, p.Description, p.Type)
		}
		fmt.Fprintln(w)
	}
}
