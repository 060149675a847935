package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/server"
	"github.com/matzehuels/flowlayout/pkg/store"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	addr     string
	mongoURI string
	database string
	noCache  bool
}

// serveCommand creates the HTTP serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve the layout pipeline over HTTP.

  POST /v1/layouts        lay out the posted document (?format=, ?width=, ...)
  GET  /v1/layouts/{id}   fetch a stored layout
  GET  /healthz           liveness and build info

Layouts are stored in MongoDB when --mongo-uri is set, in memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				f.addr = c.Config.Server.Addr
			}
			if !flags.Changed("mongo-uri") {
				f.mongoURI = c.Config.Server.MongoURI
			}
			if !flags.Changed("mongo-database") {
				f.database = c.Config.Server.MongoDatabase
			}
			return c.runServe(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB connection string for stored layouts")
	cmd.Flags().StringVar(&f.database, "mongo-database", "", "MongoDB database name")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, f serveFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx, f)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	printKeyValue("Listening", StyleLink.Render("http://"+displayAddr(f.addr)))
	return server.New(runner, st, c.Logger).ListenAndServe(ctx, f.addr)
}

func (c *CLI) newStore(ctx context.Context, f serveFlags) (store.Store, error) {
	if f.mongoURI == "" {
		printKeyValue("Store", "memory")
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, f.mongoURI, f.database)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	printKeyValue("Store", "mongodb/"+f.database)
	return st, nil
}

// displayAddr turns a bare ":port" listen address into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
