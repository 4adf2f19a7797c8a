package main

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/geometry"
)

type quoteOptions struct {
	name       string
	dims       geometry.Dimensions
	roof       geometry.Roof
	frame      catalog.FrameConfig
	eventsFile string
	format     string
	out        string
	save       bool
}

func newQuoteCmd(a *app) *cobra.Command {
	opts := quoteOptions{
		frame: catalog.DefaultFrameConfig(),
	}
	var frameType, studSize, postSize, diameter string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a building from its dimensions",
		Example: `  estimator quote --width 40 --length 50 --height 16
  estimator quote --width 40 --length 50 --frame post --diameter 24in --format pdf --out shed.pdf
  estimator quote --width 30 --length 40 --events tweaks.json --name garage --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.frame.FrameType = catalog.FrameType(frameType)
			opts.frame.StudSize = catalog.StudSize(studSize)
			opts.frame.PostSize = catalog.PostSize(postSize)
			opts.frame.PostDiameter = catalog.PostDiameter(diameter)
			return a.runQuote(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "quote", "project name")
	f.Float64Var(&opts.dims.Width, "width", 0, "building width in feet")
	f.Float64Var(&opts.dims.Length, "length", 0, "building length in feet")
	f.Float64Var(&opts.dims.Height, "height", 16, "wall height in feet")
	f.Float64Var(&opts.roof.PitchRise, "pitch-rise", 4, "roof pitch rise")
	f.Float64Var(&opts.roof.PitchRun, "pitch-run", 12, "roof pitch run")
	f.Float64Var(&opts.roof.Overhang, "overhang", 0, "roof overhang in inches")
	f.StringVar(&frameType, "frame", string(opts.frame.FrameType), "frame type: stud or post")
	f.StringVar(&studSize, "stud", string(opts.frame.StudSize), "stud size: 2x4 or 2x6")
	f.StringVar(&postSize, "post", string(opts.frame.PostSize), "post size: 2ply, 3ply or 4ply")
	f.StringVar(&diameter, "diameter", string(opts.frame.PostDiameter), "post hole diameter: 12in, 18in or 24in")
	f.StringVar(&opts.eventsFile, "events", "", "JSON file with an event or an array of events to apply")
	f.StringVarP(&opts.format, "format", "f", "txt", "output format: txt, pdf, xlsx or json")
	f.StringVarP(&opts.out, "out", "o", "", "write to this file instead of stdout")
	f.BoolVar(&opts.save, "save", false, "save the result as a project")
	return cmd
}

func (a *app) runQuote(cmd *cobra.Command, opts quoteOptions) error {
	if err := opts.frame.Validate(); err != nil {
		return err
	}
	ctx := cmd.Context()

	st, err := a.engine.New(ctx, opts.name)
	if err != nil {
		return err
	}
	events := []estimate.Event{
		estimate.SetDimensions{Dimensions: opts.dims},
		estimate.SetRoof{Roof: opts.roof},
		estimate.SetFrameType{FrameType: opts.frame.FrameType},
		estimate.SetStudSize{StudSize: opts.frame.StudSize},
		estimate.SetPostSize{PostSize: opts.frame.PostSize},
		estimate.SetPostDiameter{PostDiameter: opts.frame.PostDiameter},
	}
	if opts.eventsFile != "" {
		extra, err := readEvents(opts.eventsFile)
		if err != nil {
			return err
		}
		events = append(events, extra...)
	}
	if st, err = a.engine.ApplyAll(ctx, st, events...); err != nil {
		return err
	}

	if opts.save {
		if err := a.projects.Save(ctx, st.Snapshot(time.Now())); err != nil {
			return err
		}
		a.log.WithField("project", st.Name).Info("project saved")
	}
	return write(cmd, opts.out, opts.format, st)
}

func readEvents(path string) ([]estimate.Event, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return estimate.DecodeEvents(data)
}

func write(cmd *cobra.Command, out, format string, st estimate.State) error {
	w, closeOut, err := output(cmd, out)
	if err != nil {
		return err
	}
	if err := render(w, format, st); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}
