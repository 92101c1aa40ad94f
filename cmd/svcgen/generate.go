package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcoder/clientgen/codegen"
	"github.com/kcoder/clientgen/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate <service-definition>",
	Short: "Generate (or regenerate) a Go client package from a service definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		serviceName, err := cmd.Flags().GetString("service")
		if err != nil {
			return err
		}
		outDir, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		smithy, err := cmd.Flags().GetBool("smithy")
		if err != nil {
			return err
		}
		operation, err := cmd.Flags().GetString("operation")
		if err != nil {
			return err
		}

		var def *model.InMemoryDefinition
		if smithy {
			def, err = model.LoadSmithy(serviceName, path)
		} else {
			def, err = model.LoadJSONFile(serviceName, path)
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}

		gen := codegen.NewGenerator(def, codegen.NewOSFileWriter(), outDir)
		if operation != "" {
			return gen.GenerateOperation(model.AbsoluteIdentifier(operation))
		}
		return gen.GenerateAll()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("service", "s", "service", "Name to give the generated service definition")
	generateCmd.Flags().StringP("out", "o", ".", "Directory to write the generated client package into")
	generateCmd.Flags().Bool("smithy", false, "Treat the input file as a Smithy AST instead of a botocore-style api-2.json document")
	generateCmd.Flags().String("operation", "", "Regenerate only the named operation instead of the whole service")
}
