package cmd

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/ascendo/LACHESIS/config"
	"github.com/ascendo/LACHESIS/env"
	"github.com/ascendo/LACHESIS/interval"
	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

// settings is the configuration plus the chromosome order it names.
type settings struct {
	config.Config
	order *interval.ChromOrder
}

func loadSettings(ctx context.Context, e env.Accessor) (settings, error) {
	c, err := config.Load(e)
	if err != nil {
		return settings{}, err
	}
	order, err := c.ChromOrder(ctx)
	if err != nil {
		return settings{}, err
	}
	return settings{Config: c, order: order}, nil
}

// regionFlags restricts a command to the union of a BED file and a list of
// region strings.
type regionFlags struct {
	bedPath string
	regions string
}

func (f *regionFlags) register(cmd *cmdline.Command) {
	cmd.Flags.StringVar(&f.bedPath, "bed", "", "Restrict to the intervals of this BED file")
	cmd.Flags.StringVar(&f.regions, "region", "", `Comma-separated regions to restrict to.
Each is "chr", "chr:pos" or "chr:first-last" (1-based, closed).`)
}

// union returns nil when no restriction was given.
func (f *regionFlags) union(ctx context.Context, order *interval.ChromOrder) (*interval.Union, error) {
	if f.bedPath == "" && f.regions == "" {
		return nil, nil
	}
	var ivs []interval.Interval
	if f.bedPath != "" {
		bed, err := interval.ParseBED(ctx, f.bedPath, interval.ParseOpts{Order: order})
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, bed...)
	}
	if f.regions != "" {
		for _, r := range strings.Split(f.regions, ",") {
			iv, err := interval.ParseRegionString(strings.TrimSpace(r))
			if err != nil {
				return nil, err
			}
			if err := order.Validate(iv.Chrom); err != nil {
				return nil, err
			}
			ivs = append(ivs, iv)
		}
	}
	return interval.NewUnion(ivs)
}

// newTSV returns a writer of the given header row.
func newTSV(w io.Writer, columns ...string) (*tsv.Writer, error) {
	tw := tsv.NewWriter(w)
	for _, c := range columns {
		tw.WriteString(c)
	}
	return tw, tw.EndLine()
}

func writeInterval(tw *tsv.Writer, iv interval.Interval) {
	tw.WriteString(iv.Chrom)
	tw.WriteUint32(uint32(iv.Start))
	tw.WriteUint32(uint32(iv.Stop))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func oneArg(name string, argv []string) (string, error) {
	if len(argv) != 1 {
		return "", errors.Errorf("%s takes one pathname argument, but got %v", name, argv)
	}
	return argv[0], nil
}

// Run executes the gtools command line.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "gtools",
			Short:    "Tools for genomic interval, copy-number and variant text files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdMergeBED(),
				newCmdBEDgraph(),
				newCmdCN(),
				newCmdVCF(),
				newCmdPanelFlags(),
				newCmdPanelFreqs(),
				newCmdHapmatrix(),
			},
		})
}
