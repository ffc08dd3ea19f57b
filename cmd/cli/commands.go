package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/analyze"
	"github.com/amankumarsingh77/cube-phase-detector/internal/classifier"
	"github.com/amankumarsingh77/cube-phase-detector/internal/clips"
	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/amankumarsingh77/cube-phase-detector/internal/inference"
	"github.com/amankumarsingh77/cube-phase-detector/internal/media"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/spf13/cobra"
)

// deps builds the collaborators a command needs once the config is known.
type deps struct {
	prober func(cfg *config.Config, log logger.Logger) media.Prober
	runner func(ctx context.Context, cfg *config.Config, log logger.Logger) (analyze.Runner, error)
}

func defaultDeps() deps {
	return deps{
		prober: func(cfg *config.Config, log logger.Logger) media.Prober {
			return media.NewFFmpeg(cfg, log)
		},
		runner: func(ctx context.Context, cfg *config.Config, log logger.Logger) (analyze.Runner, error) {
			clf, err := classifier.Load(ctx, cfg, &http.Client{Timeout: time.Duration(cfg.Model.TimeoutSeconds) * time.Second}, log)
			if err != nil {
				return nil, err
			}
			return inference.NewPipeline(media.NewFFmpeg(cfg, log), clf, log), nil
		},
	}
}

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd(d deps) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "cubephase",
		Short:         "Offline tools for the cube phase detector.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "config.yml", "path to the config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newSegmentsCmd(opts, d), newAnalyzeCmd(opts, d))
	return root
}

func (o *rootOptions) load() (*config.Config, logger.Logger, error) {
	v, err := config.LoadConfig(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return nil, nil, err
	}
	if !o.verbose {
		return cfg, logger.NewNopLogger(), nil
	}
	log := logger.NewApiLogger(cfg)
	log.InitLogger()
	return cfg, log, nil
}

func newSegmentsCmd(opts *rootOptions, d deps) *cobra.Command {
	var input models.SegmentInput
	cmd := &cobra.Command{
		Use:   "segments <video>",
		Short: "Print the clip windows of a video as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			info, err := d.prober(cfg, log).Probe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			params := clips.ResolveParams(input, info.FPS, nil, clips.Params{
				FramesPerClip: cfg.Clips.FramesPerClip,
				Stride:        cfg.Clips.Stride,
			})
			return writeJSON(cmd.OutOrStdout(), clips.Segment(info.FPS, info.FrameCount, params.FramesPerClip, params.Stride))
		},
	}
	cmd.Flags().IntVar(&input.FramesPerClip, "frames-per-clip", 0, "frames per window")
	cmd.Flags().IntVar(&input.Stride, "stride", 0, "frames between window starts")
	cmd.Flags().Float64Var(&input.ClipSeconds, "clip-seconds", 0, "window length in seconds, used when --frames-per-clip is unset")
	cmd.Flags().Float64Var(&input.StrideSeconds, "stride-seconds", 0, "stride in seconds, used when --stride is unset")
	return cmd
}

func newAnalyzeCmd(opts *rootOptions, d deps) *cobra.Command {
	var framesPerClip, stride int
	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Run phase recognition on a video and print the predictions as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			params := clips.ResolveParams(models.SegmentInput{FramesPerClip: framesPerClip, Stride: stride}, 0, nil, clips.Params{
				FramesPerClip: cfg.Clips.FramesPerClip,
				Stride:        cfg.Clips.Stride,
			})
			runner, err := d.runner(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			predictions, err := runner.Run(cmd.Context(), args[0], params.FramesPerClip, params.Stride)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), predictions)
		},
	}
	cmd.Flags().IntVar(&framesPerClip, "frames-per-clip", 0, "frames per window")
	cmd.Flags().IntVar(&stride, "stride", 0, "frames between window starts")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
