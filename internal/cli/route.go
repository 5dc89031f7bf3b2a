package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"obsui/pkg/router"
)

// newRouteCmd resolves a location against a headless router and prints the
// normalized route.
func newRouteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "route <url>",
		Short: "Show the route a location resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := router.NewMemoryBrowser(args[0])
			r := router.New(b).Start(opts.cfg.RouterStart())
			defer r.Stop()
			path, _ := r.Path()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:     %s\n", path)
			fmt.Fprintf(out, "segments: %s\n", strings.Join(router.Split(path), ","))
			fmt.Fprintf(out, "mode:     %s\n", r.Mode())
			fmt.Fprintf(out, "url:      %s\n", b.URL())
			return nil
		},
	}
}
