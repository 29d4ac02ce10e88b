// FILE: lixenwraith/recorder/cmd/recorder/mask.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lixenwraith/recorder/formatter"
	"github.com/lixenwraith/recorder/mask"
	"github.com/lixenwraith/recorder/node"
	"github.com/lixenwraith/recorder/redact"
	"github.com/spf13/cobra"
)

func newMaskCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "mask",
		Short: "Apply a rules file to JSON lines from stdin and print the masked result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := mask.LoadFile(rulesPath)
			if err != nil {
				return err
			}
			return maskLines(cmd.InOrStdin(), cmd.OutOrStdout(), mask.NewSet(rules...))
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML mask rules file (required)")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func maskLines(in io.Reader, out io.Writer, rules redact.Evaluator) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tree, err := node.ParseString(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		masked, err := formatter.Marshal(redact.Redact(tree, rules))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := fmt.Fprintln(out, string(masked)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
