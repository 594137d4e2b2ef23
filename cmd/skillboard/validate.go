package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/skillboard/internal/ingestion"
	"github.com/jonathan/skillboard/internal/observability"
	"github.com/jonathan/skillboard/internal/schemas"
	"github.com/jonathan/skillboard/internal/types"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a skill group dataset",
	Long: "Checks a dataset against the built-in skill group schema and field rules, or against " +
		"another JSON Schema with --schema, and prints a summary or the problems found.",
	RunE: runValidate,
}

var (
	validateDataset string
	validateSchema  string
)

func init() {
	validateCmd.Flags().StringVarP(&validateDataset, "dataset", "d", "", "Path or URL of the dataset (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema to validate against instead")

	if err := validateCmd.MarkFlagRequired("dataset"); err != nil {
		panic(fmt.Sprintf("failed to mark dataset flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if validateSchema != "" {
		return validateAgainst(cmd, printer, validateSchema)
	}

	dataset, meta, err := ingestion.Load(cmd.Context(), validateDataset)
	if err != nil {
		var loadErr *ingestion.LoadError
		if errors.As(err, &loadErr) && loadErr.Stage == ingestion.StageRead {
			return err
		}
		return reportIssues(printer, err)
	}

	printer.PrintIssues(nil)
	printer.PrintDatasetSummary(dataset)

	if verbose {
		data, err := meta.ToJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return err
	}
	return nil
}

// validateAgainst checks the dataset document against a user-supplied JSON Schema.
func validateAgainst(cmd *cobra.Command, printer *observability.Printer, schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	doc, err := ingestion.ReadJSON(cmd.Context(), validateDataset)
	if err != nil {
		var loadErr *ingestion.LoadError
		if errors.As(err, &loadErr) && loadErr.Stage == ingestion.StageRead {
			return err
		}
		return reportIssues(printer, err)
	}

	err = schemas.Validate(filepath.Base(schemaPath), schema, doc)
	var schemaErr *schemas.SchemaError
	switch {
	case err == nil:
		printer.PrintIssues(nil)
		return nil
	case errors.As(err, &schemaErr):
		return err
	default:
		return reportIssues(printer, err)
	}
}

// reportIssues prints the problems behind err and returns an error for the exit status.
func reportIssues(printer *observability.Printer, err error) error {
	issues := datasetIssues(err)
	printer.PrintIssues(issues)
	return fmt.Errorf("validation failed: %d issue(s)", len(issues))
}

// datasetIssues flattens a validation failure into one line per problem.
func datasetIssues(err error) []string {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return schemaErr.Messages()
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		issues := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			issues = append(issues, fmt.Sprintf("%s: failed '%s' rule", fe.Namespace(), fe.Tag()))
		}
		return issues
	}

	var dupErr *types.DuplicateGroupError
	if errors.As(err, &dupErr) {
		return []string{dupErr.Error()}
	}

	return []string{err.Error()}
}
