package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JuanJml01/Lector/internal/filestore"
)

func fileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Read and edit files through the line-oriented file store",
	}

	cmd.AddCommand(fileReadCmd())
	cmd.AddCommand(fileWriteCmd())
	cmd.AddCommand(fileReplaceCmd())
	cmd.AddCommand(fileClearCmd())

	return cmd
}

func fileReadCmd() *cobra.Command {
	var (
		filePath string
		start    int
		end      int
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print a file, optionally a 1-indexed inclusive line range",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := filestore.ReadRange(filePath, start, end)
			if err != nil {
				return err
			}
			fmt.Print(content)
			if content != "" && content[len(content)-1] != '\n' {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "File to read")
	cmd.Flags().IntVar(&start, "start", 0, "First line (0 = from the top)")
	cmd.Flags().IntVar(&end, "end", 0, "Last line (0 = to the end)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func fileWriteCmd() *cobra.Command {
	var (
		filePath string
		content  string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Replace a file's contents, creating it if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := filestore.WriteFile(filePath, content); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", filePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "File to write")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Content to write")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("content")

	return cmd
}

func fileReplaceCmd() *cobra.Command {
	var (
		filePath string
		content  string
		start    int
		end      int
	)

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Replace a 1-indexed inclusive line range with new content",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := filestore.ReplaceRange(filePath, content, start, end); err != nil {
				return err
			}
			fmt.Printf("Replaced lines %d-%d of %s\n", start, end, filePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "File to edit")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Replacement content")
	cmd.Flags().IntVar(&start, "start", 0, "First line to replace")
	cmd.Flags().IntVar(&end, "end", 0, "Last line to replace (0 = to the end)")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("content")
	cmd.MarkFlagRequired("start")

	return cmd
}

func fileClearCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filestore.Open(filePath)
			if err != nil {
				return err
			}
			if err := f.Clear(); err != nil {
				return err
			}
			fmt.Printf("Cleared %s\n", filePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "File to clear")
	cmd.MarkFlagRequired("file")

	return cmd
}
