package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"schemapath/internal/analysis"
	"schemapath/internal/config"
	"schemapath/internal/crawler"
	"schemapath/internal/datamodel"
	"schemapath/internal/extractor"
	"schemapath/internal/knowledge"
	"schemapath/internal/pathgraph"
	"schemapath/internal/render"
	"schemapath/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "schemapath",
		Short: "Route and impact analysis over relational schema graphs",
	}
	dbPath    string
	modelPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Default DB path is local to the project
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "schemapath.db", "Path to the local model database (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&modelPath, "model", "m", "", "Path to a YAML model file (bypasses the database)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(impactCmd)
}

// initStore initializes the SQLite store.
func initStore() (*storage.SQLiteStore, error) {
	// Ensure config is loaded (even if defaults)
	_, _ = config.LoadConfig("config.yaml")

	return storage.NewSQLiteStore(dbPath)
}

// loadModel resolves the data model from either the YAML file or the store.
func loadModel(ctx context.Context) (*datamodel.DataModel, error) {
	if modelPath != "" {
		return datamodel.LoadYAML(modelPath)
	}

	store, err := initStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	return store.LoadModel(ctx)
}

// initSummarizer initializes the Gemini summarizer from configuration.
func initSummarizer(ctx context.Context) (knowledge.Summarizer, error) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("AI API key not configured")
	}

	return knowledge.NewGeminiSummarizer(ctx, cfg.AI.APIKey, cfg.AI.Model)
}

// resolveTables maps names to tables, failing on the first unknown name.
func resolveTables(m *datamodel.DataModel, names []string) ([]*datamodel.Table, error) {
	tables := make([]*datamodel.Table, 0, len(names))
	for _, name := range names {
		t := m.Table(name)
		if t == nil {
			return nil, fmt.Errorf("unknown table: %s", name)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a Go project for GORM-style models and store the derived schema",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			log.Fatalf("Failed to resolve path: %v", err)
		}

		fmt.Printf("📂 Scanning directory: %s\n", absPath)

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		ext, err := extractor.NewExtractor("go")
		if err != nil {
			log.Fatalf("Failed to create extractor: %v", err)
		}

		cr := crawler.NewCrawler(ext)

		fmt.Println("🚀 Building data model...")
		start := time.Now()
		result, err := cr.CollectModel(absPath)
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("✅ Model built in %v. Found %d tables.\n", time.Since(start), result.Model.Size())

		ctx := context.Background()
		fmt.Println("💾 Saving to local database...")
		if err := store.SaveModel(ctx, result.Model); err != nil {
			log.Fatalf("Failed to save model: %v", err)
		}

		fmt.Printf("🎉 Scan complete! Database: %s\n", dbPath)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <sqlite-file>",
	Short: "Import a schema from an existing SQLite database via foreign key introspection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		fmt.Printf("🔍 Introspecting database: %s\n", args[0])
		model, err := storage.IntrospectModel(ctx, args[0])
		if err != nil {
			log.Fatalf("Introspection failed: %v", err)
		}
		fmt.Printf("✅ Found %d tables.\n", model.Size())

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		fmt.Println("💾 Saving to local database...")
		if err := store.SaveModel(ctx, model); err != nil {
			log.Fatalf("Failed to save model: %v", err)
		}

		fmt.Printf("🎉 Import complete! Database: %s\n", dbPath)
	},
}

var (
	pathVia     []string
	pathExclude []string
	pathFormat  string
	pathOut     string
	pathExplain bool
)

var pathCmd = &cobra.Command{
	Use:   "path <source> <destination>",
	Short: "Compute the shortest-route graph between two tables",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig("config.yaml")
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if !cmd.Flags().Changed("format") {
			pathFormat = cfg.Path.Format
		}

		model, err := loadModel(ctx)
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}

		source := model.Table(args[0])
		if source == nil {
			log.Fatalf("Unknown source table: %s", args[0])
		}
		destination := model.Table(args[1])
		if destination == nil {
			log.Fatalf("Unknown destination table: %s", args[1])
		}

		excludedTables, err := resolveTables(model, pathExclude)
		if err != nil {
			log.Fatalf("Invalid exclusion: %v", err)
		}
		excluded := make(map[*datamodel.Table]bool, len(excludedTables))
		for _, t := range excludedTables {
			excluded[t] = true
		}
		// Config exclusions apply on top of the flag and may name tables
		// absent from this model.
		for _, name := range cfg.Path.Exclude {
			if t := model.Table(name); t != nil {
				excluded[t] = true
			}
		}

		// Waypoints absent from the model are tolerated and dropped.
		var waypoints []*datamodel.Table
		for _, name := range pathVia {
			if t := model.Table(name); t != nil {
				waypoints = append(waypoints, t)
			}
		}

		graph := pathgraph.New(model, source, destination, excluded, waypoints)
		if graph.IsEmpty() {
			fmt.Printf("🚫 No route from %s to %s.\n", source.Name, destination.Name)
		} else {
			fmt.Printf("✅ Route graph: %d tables over %d steps.\n", len(graph.Nodes()), graph.MaxColumn())
		}

		output, err := render.Render(graph, render.Format(pathFormat))
		if err != nil {
			log.Fatalf("Render failed: %v", err)
		}

		if pathOut != "" {
			if err := os.WriteFile(pathOut, []byte(output), 0o644); err != nil {
				log.Fatalf("Failed to write output: %v", err)
			}
			fmt.Printf("💾 Wrote %s output to %s\n", pathFormat, pathOut)
		} else {
			fmt.Println(output)
		}

		if pathExplain {
			summarizer, err := initSummarizer(ctx)
			if err != nil {
				log.Fatalf("Setup failed: %v\nCheck your config.yaml and API keys.", err)
			}
			fmt.Println("🧠 Generating route explanation...")
			explanation, err := summarizer.ExplainRoutes(ctx, graph)
			if err != nil {
				log.Fatalf("Explanation failed: %v", err)
			}
			fmt.Println(explanation)
		}
	},
}

var (
	impactSource  string
	impactDest    string
	impactExplain bool
)

var impactCmd = &cobra.Command{
	Use:   "impact <table>",
	Short: "Show which tables feed into and depend on a table along the routes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		model, err := loadModel(ctx)
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}

		table := model.Table(args[0])
		if table == nil {
			log.Fatalf("Unknown table: %s", args[0])
		}
		source := model.Table(impactSource)
		if source == nil {
			log.Fatalf("Unknown source table: %s", impactSource)
		}
		destination := model.Table(impactDest)
		if destination == nil {
			log.Fatalf("Unknown destination table: %s", impactDest)
		}

		graph := pathgraph.New(model, source, destination, nil, nil)
		if graph.IsEmpty() {
			log.Fatalf("No route from %s to %s.", source.Name, destination.Name)
		}

		analyzer := analysis.NewAnalyzer(graph)
		report, err := analyzer.AnalyzeTable(table)
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}

		fmt.Printf("🔍 Impact of %s on routes %s -> %s\n", table.Name, source.Name, destination.Name)
		fmt.Printf("  ⬆️  %d upstream tables\n", len(report.Ancestors))
		for _, n := range report.Ancestors {
			fmt.Printf("     - %s (step %d)\n", n.Table.Name, n.Column)
		}
		fmt.Printf("  ⬇️  %d downstream tables\n", len(report.Descendants))
		for _, n := range report.Descendants {
			fmt.Printf("     - %s (step %d)\n", n.Table.Name, n.Column)
		}

		if impactExplain {
			summarizer, err := initSummarizer(ctx)
			if err != nil {
				log.Fatalf("Setup failed: %v\nCheck your config.yaml and API keys.", err)
			}
			ancestors := make([]string, 0, len(report.Ancestors))
			for _, n := range report.Ancestors {
				ancestors = append(ancestors, n.Table.Name)
			}
			descendants := make([]string, 0, len(report.Descendants))
			for _, n := range report.Descendants {
				descendants = append(descendants, n.Table.Name)
			}
			fmt.Println("🧠 Generating impact explanation...")
			explanation, err := summarizer.ExplainImpact(ctx, table.Name, ancestors, descendants)
			if err != nil {
				log.Fatalf("Explanation failed: %v", err)
			}
			fmt.Println(explanation)
		}
	},
}

func init() {
	pathCmd.Flags().StringSliceVar(&pathVia, "via", nil, "Required waypoint tables, in order")
	pathCmd.Flags().StringSliceVar(&pathExclude, "exclude", nil, "Tables to exclude from the routes")
	pathCmd.Flags().StringVarP(&pathFormat, "format", "f", "mermaid", "Output format: mermaid, dot, json")
	pathCmd.Flags().StringVarP(&pathOut, "out", "o", "", "Write output to a file instead of stdout")
	pathCmd.Flags().BoolVar(&pathExplain, "explain", false, "Generate an AI explanation of the routes")

	impactCmd.Flags().StringVar(&impactSource, "source", "", "Source table of the route graph")
	impactCmd.Flags().StringVar(&impactDest, "dest", "", "Destination table of the route graph")
	impactCmd.Flags().BoolVar(&impactExplain, "explain", false, "Generate an AI explanation of the impact")
	_ = impactCmd.MarkFlagRequired("source")
	_ = impactCmd.MarkFlagRequired("dest")
}
