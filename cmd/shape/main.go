// Command shape validates JSON/YAML documents against declarative schema
// definitions and exports their JSON Schema projection.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	shape "github.com/shapelib/shape"
	"github.com/shapelib/shape/schemadoc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "shape",
		Short:        "Validate documents against shape schema definitions",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd(), newExportCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var schemaPath string
	var failFast bool
	cmd := &cobra.Command{
		Use:   "validate -s schema.yaml FILE...",
		Short: "Validate JSON or YAML documents against a schema definition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			opt := shape.ParseOpt{FailFast: failFast}
			var failed bool
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if _, err := shape.ParseFrom(cmd.Context(), s, sourceFor(path, data), opt); err != nil {
					failed = true
					reportIssues(cmd, path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed {
				return errors.New("validation failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema definition file (YAML or JSON)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first issue per document")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func newExportCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "export -s schema.yaml",
		Short: "Print the JSON Schema projection of a schema definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			projected, err := s.JSONSchema()
			if err != nil {
				return err
			}
			out, err := j.MarshalIndent(projected, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema definition file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func loadSchema(path string) (*shape.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return schemadoc.FromJSON(data)
	}
	return schemadoc.FromYAML(data)
}

func sourceFor(path string, data []byte) shape.Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return shape.YAMLBytes(data)
	default:
		return shape.JSONBytes(data)
	}
}

func reportIssues(cmd *cobra.Command, path string, err error) {
	iss, ok := shape.AsIssues(err)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s at %s: %s\n", path, it.Code, it.Path, it.Message)
	}
}
