package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-delivery/internal/stage"
)

var (
	flagSchema   bool
	flagValidate bool
	flagExport   bool
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the stage catalog",
	Long: `List the stages of the active catalog.

The catalog is read from --stages, ~/.santa/stages.json, ./configs/stages.json
or the built-in catalog, in that order. JSON and YAML are both accepted.

Examples:
  santa stages
  santa stages --stages ./my-stages.json --validate
  santa stages --schema > stages.schema.json
  santa stages --export > stages.json`,
	RunE: runStages,
}

func init() {
	stagesCmd.Flags().BoolVar(&flagSchema, "schema", false, "Print the JSON Schema of the catalog format")
	stagesCmd.Flags().BoolVar(&flagValidate, "validate", false, "Check that obstacle count and top speed never drop between stages")
	stagesCmd.Flags().BoolVar(&flagExport, "export", false, "Print the active catalog as JSON")
}

func runStages(_ *cobra.Command, _ []string) error {
	if flagSchema {
		data, err := stage.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	logger := newLogger(os.Stderr)
	catalog, err := stage.Load(flagStages)
	if err != nil {
		logger.Error("cannot load stage catalog", "err", err)
		return err
	}

	if flagExport {
		data, err := stage.Marshal(catalog)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Stage catalog: %s\n\n", catalog.Source())
	fmt.Printf("  %-5s  %-6s  %-9s  %s\n", "Stage", "Blocks", "Top speed", "Ice blocks")
	fmt.Printf("  %-5s  %-6s  %-9s  %s\n", "-----", "------", "---------", "----------")
	for _, def := range catalog.All() {
		fmt.Printf("  %-5d  %-6d  %-9.0f  %s\n", def.Number, def.ObstacleCount(), def.MaxObstacleSpeed(), describe(def))
	}

	if flagValidate {
		fmt.Println()
		if err := catalog.CheckMonotonic(); err != nil {
			logger.Error("catalog is not monotonic", "err", err)
			return err
		}
		fmt.Println("Catalog is valid and difficulty never decreases.")
	}
	return nil
}

// describe summarizes the obstacles of a stage, e.g. "right 120 circular, up 80 linear".
func describe(def stage.Definition) string {
	obstacles := def.Obstacles()
	if len(obstacles) == 0 {
		return "none"
	}
	parts := make([]string, len(obstacles))
	for i, o := range obstacles {
		parts[i] = fmt.Sprintf("%s %.0f %s", o.Direction, o.Speed, o.Pattern)
	}
	return strings.Join(parts, ", ")
}
