package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/preflight/preflight/internal/adapters/inbound/web"
	"github.com/preflight/preflight/internal/adapters/outbound/configstore"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deployment configuration interface",
		Long:  "Start the HTTP interface for entering deployment credentials. Credentials are validated, the password is hashed, and the result is persisted into the project's configuration files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving directory: %w", err)
			}

			srv := web.NewServer(configstore.New(logger), absDir, logger)
			return srv.Run(fmt.Sprintf(":%d", port))
		},
	}

	cmd.Flags().IntVar(&port, "port", 5000, "Port to listen on")
	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory to configure")

	return cmd
}
