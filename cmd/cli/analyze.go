package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JuanJml01/Lector/internal/analyzer"
	"github.com/JuanJml01/Lector/internal/filestore"
	"github.com/JuanJml01/Lector/internal/source"
)

func analyzeCmd() *cobra.Command {
	var (
		filePath string
		language string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a source file and show its structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filestore.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			lang := language
			if lang == "" {
				lang = string(source.DetectLanguage(filePath))
			}

			registry := analyzer.NewRegistry()
			result, err := registry.Dispatch(lang, f.Content())
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if asJSON {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			printResult(f.Path(), lang, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Source file to analyze")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language tag (inferred from extension when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.MarkFlagRequired("file")

	return cmd
}

func printResult(path, lang string, result *analyzer.Result) {
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Language: %s\n", lang)
	fmt.Printf("Functions: %d\n", len(result.Functions))
	fmt.Printf("Classes: %d\n\n", len(result.Classes))

	for i, fn := range result.Functions {
		fmt.Printf("%d. %s(%s) [lines %d-%d]\n", i+1, fn.Name, formatParams(fn.Parameters), fn.StartLine, fn.EndLine)
		if fn.ReturnType != "" && fn.ReturnType != analyzer.TypeUnknown {
			fmt.Printf("   returns %s\n", fn.ReturnType)
		}
	}

	for _, cls := range result.Classes {
		fmt.Printf("class %s\n", cls.Name)
		if len(cls.Bases) > 0 {
			fmt.Printf("  bases: %s\n", strings.Join(cls.Bases, ", "))
		}
		for _, m := range cls.Methods {
			fmt.Printf("  %s(%s)\n", m.Name, strings.Join(m.Args, ", "))
		}
		for _, attr := range cls.Attributes {
			fmt.Printf("  attr %s\n", attr)
		}
	}
}

func formatParams(params []analyzer.Parameter) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p.Name
		if p.Type != analyzer.TypeUnknown && p.Type != "" {
			out += ": " + p.Type
		}
	}
	return out
}
