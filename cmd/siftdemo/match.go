package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/cwbudde/gosift/internal/sift"
	"github.com/spf13/cobra"
)

var (
	imgAPath string
	imgBPath string
	ratio    float64
	crossChk bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Detect and match keypoints between two images",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&imgAPath, "a", "", "First image path (required)")
	matchCmd.Flags().StringVar(&imgBPath, "b", "", "Second image path (required)")
	matchCmd.Flags().Float64Var(&ratio, "ratio", 0.8, "Lowe's ratio test threshold")
	matchCmd.Flags().BoolVar(&crossChk, "cross-check", true, "Require mutual nearest neighbors")

	matchCmd.MarkFlagRequired("a")
	matchCmd.MarkFlagRequired("b")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	det, err := sift.New(sift.DefaultConfig())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()
	resA, err := detectFile(ctx, det, imgAPath)
	if err != nil {
		return err
	}
	resB, err := detectFile(ctx, det, imgBPath)
	if err != nil {
		return err
	}

	opts := sift.MatchOptions{RatioThreshold: ratio, CrossCheck: crossChk}
	matches := sift.MatchDescriptors(resA.DescriptorMatrix(), resB.DescriptorMatrix(), opts)

	slog.Info("match complete", "a_keypoints", len(resA.Positions), "b_keypoints", len(resB.Positions), "matches", len(matches))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(matches)
}

func detectFile(ctx context.Context, det *sift.Detector, path string) (*sift.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	res, err := det.DetectAndExtract(ctx, sift.NewImageFromGray(toGray(src)))
	if err != nil {
		return nil, fmt.Errorf("detection failed for %s: %w", path, err)
	}
	return res, nil
}
