package cmd

import (
	"context"
	"io"

	"github.com/ascendo/LACHESIS/copynumber"
	"github.com/ascendo/LACHESIS/env"
	"github.com/ascendo/LACHESIS/interval"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

type bedFlags struct {
	chrom    string
	oneBased bool
}

func (f *bedFlags) register(cmd *cmdline.Command) {
	cmd.Flags.StringVar(&f.chrom, "chrom", "", "Only read intervals on this chromosome")
	cmd.Flags.BoolVar(&f.oneBased, "one-based", false, "Input intervals are 1-based and closed")
}

func (f *bedFlags) opts(s settings) interval.ParseOpts {
	return interval.ParseOpts{Chrom: f.chrom, Order: s.order, OneBasedInput: f.oneBased}
}

func newCmdMergeBED() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "merge-bed",
		Short: "Merge the intervals of a BED file and group them into windows",
		Long: `
merge-bed merges overlapping and abutting intervals per chromosome, then cuts
each chromosome's merged intervals into windows of -k consecutive intervals.
Output columns are chrom, start, stop (0-based, half-open) and the window's
index within its chromosome.  With -bed or -region, only the merged intervals
that share a base with the restriction are printed; window indexes are those
of the unrestricted partition.`,
		ArgsName: "path",
	}
	var (
		flags   bedFlags
		regions regionFlags
		k       int
	)
	flags.register(cmd)
	regions.register(cmd)
	cmd.Flags.IntVar(&k, "k", 1, "Number of merged intervals per window")
	cmd.Runner = cmdutil.RunnerFunc(func(e *cmdline.Env, argv []string) error {
		path, err := oneArg("merge-bed", argv)
		if err != nil {
			return err
		}
		return mergeBED(vcontext.Background(), env.OS{}, e.Stdout, path, k, flags, regions)
	})
	return cmd
}

func mergeBED(ctx context.Context, e env.Accessor, w io.Writer, path string, k int, flags bedFlags, regions regionFlags) error {
	s, err := loadSettings(ctx, e)
	if err != nil {
		return err
	}
	restrict, err := regions.union(ctx, s.order)
	if err != nil {
		return err
	}
	ws, err := interval.ParseAndMergeBED(ctx, path, k, flags.opts(s))
	if err != nil {
		return err
	}
	tw, err := newTSV(w, "#chrom", "start", "stop", "window")
	if err != nil {
		return err
	}
	for _, chrom := range ws.Chroms {
		for i, win := range ws.ByChrom[chrom] {
			for _, iv := range win.Intervals {
				if restrict != nil && !restrict.Intersects(iv) {
					continue
				}
				writeInterval(tw, iv)
				tw.WriteUint32(uint32(i))
				if err := tw.EndLine(); err != nil {
					return err
				}
			}
		}
	}
	return tw.Flush()
}

func newCmdBEDgraph() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "bedgraph",
		Short:    "Print the valued intervals of a BEDgraph file",
		ArgsName: "path",
	}
	var flags bedFlags
	flags.register(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(e *cmdline.Env, argv []string) error {
		path, err := oneArg("bedgraph", argv)
		if err != nil {
			return err
		}
		return bedgraph(vcontext.Background(), env.OS{}, e.Stdout, path, flags)
	})
	return cmd
}

func bedgraph(ctx context.Context, e env.Accessor, w io.Writer, path string, flags bedFlags) error {
	s, err := loadSettings(ctx, e)
	if err != nil {
		return err
	}
	vals, err := interval.ParseBEDgraph(ctx, path, flags.opts(s))
	if err != nil {
		return err
	}
	tw, err := newTSV(w, "#chrom", "start", "stop", "value")
	if err != nil {
		return err
	}
	for _, v := range vals {
		writeInterval(tw, v.Interval)
		tw.WriteString(formatFloat(v.Value))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func newCmdCN() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "cn",
		Short: "Print or query a copy-number profile",
		Long: `
cn prints every call of a copy-number BEDgraph in interval order.  With
-region, only the calls overlapping the region are printed.`,
		ArgsName: "path",
	}
	var (
		flags  bedFlags
		region string
	)
	flags.register(cmd)
	cmd.Flags.StringVar(&region, "region", "", `Print only calls overlapping this region ("chr", "chr:pos" or "chr:first-last")`)
	cmd.Runner = cmdutil.RunnerFunc(func(e *cmdline.Env, argv []string) error {
		path, err := oneArg("cn", argv)
		if err != nil {
			return err
		}
		return cn(vcontext.Background(), env.OS{}, e.Stdout, path, region, flags)
	})
	return cmd
}

func cn(ctx context.Context, e env.Accessor, w io.Writer, path, region string, flags bedFlags) error {
	s, err := loadSettings(ctx, e)
	if err != nil {
		return err
	}
	var query interval.Interval
	if region != "" {
		if query, err = interval.ParseRegionString(region); err != nil {
			return err
		}
		if err := s.order.Validate(query.Chrom); err != nil {
			return err
		}
	}
	idx, err := copynumber.Parse(ctx, path, flags.opts(s))
	if err != nil {
		return err
	}
	calls := idx.Entries()
	if region != "" {
		calls = idx.Overlapping(query)
	}
	tw, err := newTSV(w, "#chrom", "start", "stop", "cn")
	if err != nil {
		return err
	}
	for _, c := range calls {
		writeInterval(tw, c.Interval)
		tw.WriteUint32(uint32(c.CN))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
