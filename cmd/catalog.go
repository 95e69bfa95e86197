package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/graphdb"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/render"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse, validate and import module catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every module of the configured source",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer d.Close()

		modules, err := d.modules(cmd.Context())
		if err != nil {
			return fmt.Errorf("list modules: %w", err)
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(modules)
		}
		return render.Modules(cmd.OutOrStdout(), modules)
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one module with the modules that require it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(ctx, false)
		if err != nil {
			return err
		}
		defer d.Close()

		m, ok, err := d.source.ModuleDetails(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get module: %w", err)
		}
		if !ok {
			return fmt.Errorf("module %q not found", args[0])
		}

		var dependents []string
		if all, err := d.modules(ctx); err == nil {
			dependents = knowledge.NewGraph(all).Dependents(m.ID)
		}
		return render.Module(cmd.OutOrStdout(), m, dependents)
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file against the schema and the graph rules",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogFromArgs(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s is valid: %d modules, starting points %v\n",
			cat.Version, len(cat.Modules), cat.Graph().Roots())
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the stored catalog with a catalog file (default: --catalog or the seed)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		toNeo4j, _ := cmd.Flags().GetBool("neo4j")

		cat, err := catalogFromArgs(args)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.ModuleRepo().ReplaceCatalog(ctx, cat); err != nil {
			return fmt.Errorf("import catalog: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported catalog %s (%d modules) into SQLite\n", cat.Version, len(cat.Modules))

		if !toNeo4j {
			return nil
		}
		client, err := graphdb.New(ctx, cfg.Neo4j, log)
		if err != nil {
			return err
		}
		defer client.Close(ctx)
		if err := client.SyncCatalog(ctx, cat); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Synced catalog %s to neo4j at %s\n", cat.Version, cfg.Neo4j.URI)
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the catalog of the configured source as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var cat *knowledge.Catalog
		switch cfg.Source {
		case config.SourceSQLite:
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			if cat, err = st.ModuleRepo().Catalog(ctx); err != nil {
				return fmt.Errorf("read stored catalog: %w", err)
			}
		default:
			d, err := openDeps(ctx, false)
			if err != nil {
				return err
			}
			defer d.Close()
			modules, err := d.modules(ctx)
			if err != nil {
				return fmt.Errorf("list modules: %w", err)
			}
			cat = &knowledge.Catalog{Version: d.version, FallbackModules: d.fallback, Modules: modules}
		}

		out, err := cat.EncodeYAML()
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// catalogFromArgs loads the file named in args, else --catalog, else the seed.
func catalogFromArgs(args []string) (*knowledge.Catalog, error) {
	if len(args) == 1 {
		return knowledge.LoadCatalog(args[0])
	}
	return loadCatalog()
}

func init() {
	catalogListCmd.Flags().Bool("json", false, "Print modules as JSON")
	catalogImportCmd.Flags().Bool("neo4j", false, "Also sync the catalog to neo4j")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
}
