package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JuanJml01/Lector/internal/analyzer"
	"github.com/JuanJml01/Lector/internal/config"
	"github.com/JuanJml01/Lector/internal/filestore"
	"github.com/JuanJml01/Lector/internal/llm"
	"github.com/JuanJml01/Lector/internal/source"
)

func askCmd() *cobra.Command {
	var (
		prompt      string
		model       string
		system      string
		explainFile string
	)

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Send a prompt to the text-generation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if model == "" {
				model = cfg.GeminiModel
			}

			gemini, err := llm.NewGeminiClient(cfg.GeminiAPIKey, model)
			if err != nil {
				return err
			}

			var client llm.Client = gemini
			if cfg.LLMCache != "none" {
				cache := llm.CreateCache(cfg.LLMCache, 1000, time.Hour)
				client = llm.NewCachedClient(gemini, cache, time.Hour)
			}

			req := &llm.Request{
				Prompt: prompt,
				System: system,
			}

			// Ground the prompt in a file's structure when asked to.
			if explainFile != "" {
				f, err := filestore.Open(explainFile)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}

				lang := string(source.DetectLanguage(explainFile))
				result, err := analyzer.NewRegistry().Dispatch(lang, f.Content())
				if err != nil {
					return fmt.Errorf("analysis failed: %w", err)
				}

				req.Prompt = llm.BuildExplainPrompt(f.Path(), f.Content(), result, prompt)
				if req.System == "" {
					req.System = llm.ExplainSystemPrompt
				}
			}

			resp, err := client.Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			fmt.Println(resp.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt text")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Gemini model (defaults to GEMINI_MODEL)")
	cmd.Flags().StringVarP(&system, "system", "s", "", "System instruction")
	cmd.Flags().StringVar(&explainFile, "explain", "", "Ground the prompt in this file's analysis")
	cmd.MarkFlagRequired("prompt")

	return cmd
}
