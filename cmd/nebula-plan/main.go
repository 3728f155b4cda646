// Package main provides the nebula-plan CLI, a developer tool that
// compiles a relationship pattern described in YAML and prints the
// resulting plan tree.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/whitewum/nebula-graph/pkg/config"
	"github.com/whitewum/nebula-graph/pkg/plan"
	"github.com/whitewum/nebula-graph/pkg/planner"
	"github.com/whitewum/nebula-graph/pkg/schema"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	buildTime = "unknown" // Set via ldflags: -X main.buildTime=$(date +%Y%m%d-%H%M%S)
)

// patternFile is the YAML document the explain subcommand consumes.
type patternFile struct {
	Space struct {
		ID int64 `yaml:"id"`
	} `yaml:"space"`
	EdgeSchemas []schema.EdgeSchema `yaml:"edge_schemas"`
	Pattern     struct {
		Direction string  `yaml:"direction"` // out | in | both
		EdgeTypes []int64 `yaml:"edge_types"`
		MinHops   *int    `yaml:"min_hops"`
		MaxHops   *int    `yaml:"max_hops"`
		Reversely bool    `yaml:"reversely"`
	} `yaml:"pattern"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "nebula-plan",
		Short: "Compile relationship patterns into execution plans",
		Long: `nebula-plan is a developer tool for the pattern sub-plan compiler.
It reads a pattern description from YAML, compiles the variable-length
expansion subplan, and prints the plan tree the runtime would execute.`,
	}

	rootCmd.AddCommand(newVersionCmd(), newExplainCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nebula-plan %s (%s, built %s)\n", version, commit, buildTime)
		},
	}
}

func newExplainCmd() *cobra.Command {
	var (
		file       string
		catalogDir string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Compile a pattern file and print the plan tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read pattern file: %w", err)
			}
			var pf patternFile
			if err := yaml.Unmarshal(data, &pf); err != nil {
				return fmt.Errorf("parse pattern file: %w", err)
			}

			catalog, cleanup, err := buildCatalog(&pf, catalogDir)
			if err != nil {
				return err
			}
			defer cleanup()

			sub, err := compile(&pf, catalog, cfg)
			if err != nil {
				return err
			}
			fmt.Print(plan.Explain(sub.Root))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "pattern description YAML (required)")
	cmd.Flags().StringVar(&catalogDir, "catalog-dir", "", "persistent schema catalog directory")
	cmd.Flags().StringVar(&configPath, "config", "", "planner config YAML")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))
	return cmd
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.LoadFromFile(path)
}

// buildCatalog loads the pattern file's edge schemas into either a
// persistent badger catalog or an in-memory one.
func buildCatalog(pf *patternFile, dir string) (schema.Catalog, func(), error) {
	if dir != "" {
		catalog, err := schema.OpenBadgerCatalog(dir)
		if err != nil {
			return nil, nil, err
		}
		for i := range pf.EdgeSchemas {
			if err := catalog.PutEdgeSchema(pf.Space.ID, &pf.EdgeSchemas[i]); err != nil {
				catalog.Close()
				return nil, nil, err
			}
		}
		cleanup := func() {
			if err := catalog.Close(); err != nil {
				log.Printf("close catalog: %v", err)
			}
		}
		return catalog, cleanup, nil
	}

	catalog := schema.NewMemoryCatalog()
	for i := range pf.EdgeSchemas {
		if err := catalog.PutEdgeSchema(pf.Space.ID, &pf.EdgeSchemas[i]); err != nil {
			return nil, nil, err
		}
	}
	return catalog, func() {}, nil
}

func compile(pf *patternFile, catalog schema.Catalog, cfg config.Config) (plan.SubPlan, error) {
	direction, err := parseDirection(pf.Pattern.Direction)
	if err != nil {
		return plan.SubPlan{}, err
	}

	edge := &planner.EdgeInfo{
		Direction: direction,
		EdgeTypes: pf.Pattern.EdgeTypes,
	}
	if pf.Pattern.MinHops != nil || pf.Pattern.MaxHops != nil {
		r := &planner.StepRange{Min: 1, Max: cfg.DefaultMaxHops}
		if pf.Pattern.MinHops != nil {
			r.Min = *pf.Pattern.MinHops
		}
		if pf.Pattern.MaxHops != nil {
			r.Max = *pf.Pattern.MaxHops
		}
		edge.Range = r
	}

	ctx := plan.NewContext()
	start := plan.NewStart(ctx)
	expand := planner.NewExpand(ctx, catalog, pf.Space.ID, start, start.OutputVar(),
		planner.WithReversely(pf.Pattern.Reversely),
		planner.WithMaxSteps(cfg.MaxTraversalSteps),
	)
	return expand.DoExpand(&planner.NodeInfo{}, edge)
}

func parseDirection(raw string) (plan.Direction, error) {
	switch raw {
	case "out", "":
		return plan.DirectionOut, nil
	case "in":
		return plan.DirectionIn, nil
	case "both":
		return plan.DirectionBoth, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want out, in, or both)", raw)
	}
}
