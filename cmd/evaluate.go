package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"slicedss/qosplot"
	"slicedss/slice"
)

var (
	request  = slice.DefaultRequest()
	output   string // json or text
	plotPath string // Optional SVG output
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one QoS request and print the recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if logLevel == "" {
			cfg.Log.Level = "warn"
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		recommender, err := newRecommender(cfg, logger)
		if err != nil {
			return err
		}
		return runEvaluate(cmd.Context(), cmd.OutOrStdout(), recommender, request, output, plotPath, logger)
	},
}

func runEvaluate(ctx context.Context, out io.Writer, recommender slice.Recommender, req slice.Request, format, plot string, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rec, err := recommender.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	if plot != "" {
		file, err := os.Create(plot)
		if err != nil {
			return fmt.Errorf("create plot: %w", err)
		}
		defer file.Close()
		if err := qosplot.Render(file, float64(req.PacketDelayMs), req.PacketLossRate, qosplot.DefaultOptions()); err != nil {
			return err
		}
		logger.Info("plot written", zap.String("path", plot))
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "text":
		return writeText(out, rec)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(out io.Writer, rec *slice.Recommendation) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "Recommended Slice: %s\n", rec.Label())
	p.Fprintf(out, "Confidence: %.0f%%\n", rec.Confidence*100)
	p.Fprintf(out, "QoS point: %d ms, loss %.5f\n", rec.Point.PacketDelayMs, rec.Point.PacketLossRate)
	fmt.Fprintln(out, "Why this slice?")
	for _, reason := range rec.Rationale {
		fmt.Fprintf(out, "- %s\n", reason)
	}
	_, err := fmt.Fprintf(out, "Note: %s\n", rec.Note)
	return err
}

func init() {
	f := evaluateCmd.Flags()
	f.IntVar(&request.PacketDelayMs, "delay", slice.DefaultPacketDelayMs, "Packet delay in ms [0, 300]")
	f.Float64Var(&request.PacketLossRate, "loss", slice.DefaultPacketLossRate, "Packet loss rate [0, 0.01]")
	f.BoolVar(&request.IoT, "iot", false, "IoT service")
	f.BoolVar(&request.Smartphone, "smartphone", false, "Smartphone service")
	f.BoolVar(&request.Healthcare, "healthcare", false, "Healthcare service")
	f.BoolVar(&request.PublicSafety, "public-safety", false, "Public safety service")
	f.BoolVar(&request.ARVR, "arvr", false, "AR/VR or gaming service")
	f.BoolVar(&request.GBR, "gbr", false, "Guaranteed Bit Rate required")
	f.BoolVar(&request.Is5G, "5g", false, "5G access capable")
	f.StringVarP(&output, "output", "o", "text", "Output format (text, json)")
	f.StringVar(&plotPath, "plot", "", "Write the QoS plot as SVG to this file")
}
