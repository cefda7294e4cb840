package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command, e *env) {
	r := mcp.Runner{Name: "palette"}
	var transport string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol server.",
		Long: `Launch an MCP server that lets an assistant read, add and analyze
journal entries through the Model Context Protocol.`,
		Example: `
palette mcp --transport stdio
palette mcp --addr 127.0.0.1:0
palette mcp --addr 0.0.0.0:8443 --tls-cert cert.pem --tls-key key.pem
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			svc, err := e.Service()
			if err != nil {
				return err
			}
			r.Service = svc
			r.Version = version
			r.Transport = t
			r.Listening = func(url string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", url)
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return r.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "Transport to use: http or stdio.")
	cmd.Flags().StringVar(&r.Addr, "addr", "127.0.0.1:8080", "host:port for the HTTP transport, port 0 picks a free one.")
	cmd.Flags().StringVar(&r.Path, "path", "/mcp", "HTTP endpoint path.")
	cmd.Flags().StringVar(&r.TLSCert, "tls-cert", "", "TLS certificate file for HTTPS.")
	cmd.Flags().StringVar(&r.TLSKey, "tls-key", "", "TLS private key file for HTTPS.")

	topLevel.AddCommand(cmd)
}
