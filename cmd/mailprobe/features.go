package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/mailprobe/mailprobe/internal/nlp/feature"
	"github.com/mailprobe/mailprobe/internal/nlp/osb"
	"github.com/mailprobe/mailprobe/internal/nlp/words"
)

func featuresCmd() *cli.Command {
	var (
		window int64
		format string
		hashed bool
	)

	return &cli.Command{
		Name:      "features",
		Usage:     "Extract OSB features from text (file argument or stdin)",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "window",
				Aliases:     []string{"w"},
				Usage:       "sliding window size",
				Value:       5,
				Destination: &window,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, jsonl)",
				Value:       "text",
				Destination: &format,
			},
			&cli.BoolFlag{
				Name:        "hashed",
				Usage:       "emit 64-bit feature hashes instead of feature text",
				Destination: &hashed,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyFeaturesConfig(cmd, LoadConfig(), &window)

			text, err := readInput(cmd)
			if err != nil {
				return err
			}
			if window < 1 {
				return fmt.Errorf("window must be at least 1")
			}

			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()
			return writeFeatures(out, text, int(window), format, hashed)
		},
	}
}

func readInput(cmd *cli.Command) (string, error) {
	if path := cmd.Args().First(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

type featureLine struct {
	Feature string `json:"feature,omitempty"`
	Hash    uint64 `json:"hash,omitempty"`
	Idx     int    `json:"idx"`
}

func writeFeatures(out io.Writer, text string, window int, format string, hashed bool) error {
	tok, err := osb.New(words.NewSplitter(text), window, func(g osb.Gram) featureLine {
		if hashed {
			return featureLine{Hash: feature.Hash(g)}
		}
		return featureLine{Feature: feature.Text(g)}
	})
	if err != nil {
		return err
	}

	for {
		item, ok := tok.Next()
		if !ok {
			return nil
		}
		line := item.Inner
		line.Idx = item.Idx
		switch format {
		case "jsonl":
			encoded, err := json.Marshal(line)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "%s\n", encoded); err != nil {
				return err
			}
		default:
			if hashed {
				_, err = fmt.Fprintf(out, "%d\t%016x\n", line.Idx, line.Hash)
			} else {
				_, err = fmt.Fprintf(out, "%d\t%s\n", line.Idx, line.Feature)
			}
			if err != nil {
				return err
			}
		}
	}
}
