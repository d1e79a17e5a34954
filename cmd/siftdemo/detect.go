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
	imgPath     string
	outPath     string
	upsampling  int
	nOctaves    int
	nScales     int
	sigmaMin    float64
	cEdge       float64
	lambdaOri   float64
	lambdaDescr float64
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect keypoints and descriptors in an image",
	Long:  `Runs the full detection pipeline over a single image and writes its keypoints as JSON.`,
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&imgPath, "image", "", "Input image path (required)")
	detectCmd.Flags().StringVar(&outPath, "out", "", "Output JSON path (default stdout)")
	detectCmd.Flags().IntVar(&upsampling, "upsampling", 2, "Pre-scale factor: 1, 2, or 4")
	detectCmd.Flags().IntVar(&nOctaves, "octaves", 8, "Maximum octave count")
	detectCmd.Flags().IntVar(&nScales, "scales", 3, "Intra-octave scale steps")
	detectCmd.Flags().Float64Var(&sigmaMin, "sigma-min", 1.6, "Seed blur at octave 0, scale 0")
	detectCmd.Flags().Float64Var(&cEdge, "edge-threshold", 10, "Edge-response threshold")
	detectCmd.Flags().Float64Var(&lambdaOri, "lambda-ori", 1.5, "Orientation patch radius scale")
	detectCmd.Flags().Float64Var(&lambdaDescr, "lambda-descr", 6, "Descriptor patch radius scale")

	detectCmd.MarkFlagRequired("image")
	rootCmd.AddCommand(detectCmd)
}

type keypointRecord struct {
	Y           float64 `json:"y"`
	X           float64 `json:"x"`
	Sigma       float64 `json:"sigma"`
	Octave      int     `json:"octave"`
	Scale       int     `json:"scale"`
	Orientation float64 `json:"orientation"`
	Descriptor  []byte  `json:"descriptor"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(imgPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	gray := toGray(src)
	slog.Info("loaded image", "width", gray.Bounds().Dx(), "height", gray.Bounds().Dy())

	cfg := sift.DefaultConfig()
	cfg.Upsampling = upsampling
	cfg.NOctaves = nOctaves
	cfg.NScales = nScales
	cfg.SigmaMin = sigmaMin
	cfg.CEdge = cEdge
	cfg.LambdaOri = lambdaOri
	cfg.LambdaDescr = lambdaDescr

	det, err := sift.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	res, err := det.DetectAndExtract(context.Background(), sift.NewImageFromGray(gray))
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	slog.Info("detection complete", "backend", sift.ActiveBackend, "keypoints", len(res.Positions))

	records := make([]keypointRecord, len(res.Positions))
	for i, pos := range res.Positions {
		records[i] = keypointRecord{
			Y:           pos[0],
			X:           pos[1],
			Sigma:       res.Sigmas[i],
			Octave:      res.Octaves[i],
			Scale:       res.Scales[i],
			Orientation: res.Orientations[i],
		}
		if i < len(res.Descriptors) {
			records[i].Descriptor = res.Descriptors[i]
		}
	}

	out := os.Stdout
	if outPath != "" {
		w, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer w.Close()
		out = w
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, src.At(x, y))
		}
	}
	return gray
}
