package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/skyrig/internal/engine/sky"
)

type sampleOptions struct {
	from, to, step float64
}

func newSampleCmd(root *rootOptions) *cobra.Command {
	opts := &sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the derived sky state over a range of hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			return runSample(cmd, cfg.Sky, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.from, "from", 0, "First hour")
	cmd.Flags().Float64Var(&opts.to, "to", 24, "Last hour (exclusive)")
	cmd.Flags().Float64Var(&opts.step, "step", 1, "Hours between samples")
	return cmd
}

func runSample(cmd *cobra.Command, cfg sky.Config, opts *sampleOptions) error {
	if opts.step <= 0 {
		return fmt.Errorf("step must be positive, got %g", opts.step)
	}
	if opts.to < opts.from {
		return fmt.Errorf("empty range %g..%g", opts.from, opts.to)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HOUR\tSUN EL\tSUN AZ\tMOON EL\tBLEND\tPHASE\tSTARS\tKELVIN\tSUN I\tMOON I\tAMBIENT")
	for i := 0; ; i++ {
		h := opts.from + float64(i)*opts.step
		if h >= opts.to {
			break
		}
		st := sky.Derive(h, cfg)
		phase := "night"
		if st.IsDay {
			phase = "day"
		}
		fmt.Fprintf(w, "%05.2f\t%6.1f\t%6.1f\t%6.1f\t%.2f\t%s\t%.2f\t%4.0f\t%.2f\t%.2f\t%.3f\n",
			st.Hour, st.SunElevation, st.SunAzimuth, st.MoonElevation,
			st.NightBlend, phase, st.StarOpacity, st.SunTemperature,
			st.Sun.Intensity, st.Moon.Intensity, ambient(st))
	}
	return w.Flush()
}

// ambient is the mean hemisphere irradiance on an upward-facing surface.
func ambient(st sky.State) float32 {
	c := st.Hemisphere.Irradiance(1)
	return (c[0] + c[1] + c[2]) / 3
}
