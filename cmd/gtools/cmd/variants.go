package cmd

import (
	"context"
	"io"
	"sort"

	"github.com/ascendo/LACHESIS/env"
	"github.com/ascendo/LACHESIS/variant"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

// vcfFlags are the record-selection flags shared by the VCF commands.
type vcfFlags struct {
	chrom    string
	genotype string
	dbsnp    string
	dialect  string
	regionFlags
}

func (f *vcfFlags) register(cmd *cmdline.Command) {
	cmd.Flags.StringVar(&f.chrom, "chrom", "", "Only read variants on this chromosome")
	cmd.Flags.StringVar(&f.genotype, "genotype", "", `Only read variants of this genotype class: "het", "homalt" or "other"`)
	cmd.Flags.StringVar(&f.dbsnp, "dbsnp", "", `Only read variants with this dbSNP membership: "true" or "false"`)
	cmd.Flags.StringVar(&f.dialect, "dialect", "auto", `VCF dialect: "gatk", "samtools" or "auto" (sniff the header)`)
	f.regionFlags.register(cmd)
}

func (f *vcfFlags) opts(ctx context.Context, s settings) (opts variant.ParseOpts, err error) {
	if err = s.order.Validate(f.chrom); err != nil {
		return
	}
	opts.Filter.Chrom = f.chrom
	if f.genotype != "" {
		if opts.Filter.Genotype, err = variant.ParseGenotype(f.genotype); err != nil {
			return
		}
	}
	if opts.Filter.InDB, err = variant.ParseTribool(f.dbsnp); err != nil {
		return
	}
	if opts.Dialect, err = variant.DialectByName(f.dialect); err != nil {
		return
	}
	if opts.Regions, err = f.union(ctx, s.order); err != nil {
		return
	}
	opts.Parallelism = s.Parallelism
	return
}

func writeRecords(w io.Writer, recs []variant.Record, withPanel bool) error {
	columns := []string{"#chrom", "pos", "ref", "alt", "genotype", "dbsnp", "qual"}
	if withPanel {
		columns = append(columns, "in_panel")
	}
	tw, err := newTSV(w, columns...)
	if err != nil {
		return err
	}
	for _, r := range recs {
		tw.WriteString(r.Chrom)
		tw.WriteUint32(uint32(r.Pos))
		tw.WriteString(r.Ref)
		tw.WriteString(r.Alt)
		tw.WriteString(r.Genotype.String())
		tw.WriteString(r.InDB.String())
		if r.HasQual {
			tw.WriteString(formatFloat(r.Qual))
		} else {
			tw.WriteString(".")
		}
		if withPanel {
			tw.WriteString(r.InPanel.String())
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func newCmdVCF() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "vcf",
		Short: "Print the biallelic variants of VCF files",
		Long: `
vcf prints the biallelic variants of every file, concatenated in argument
order.  Rows without a single alternate allele are skipped.`,
		ArgsName: "path...",
	}
	var flags vcfFlags
	flags.register(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(e *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return errors.New("vcf takes at least one pathname argument")
		}
		return printVCF(vcontext.Background(), env.OS{}, e.Stdout, argv, flags)
	})
	return cmd
}

func printVCF(ctx context.Context, e env.Accessor, w io.Writer, paths []string, flags vcfFlags) error {
	s, err := loadSettings(ctx, e)
	if err != nil {
		return err
	}
	opts, err := flags.opts(ctx, s)
	if err != nil {
		return err
	}
	recs, err := variant.ParseVCF(ctx, paths, opts)
	if err != nil {
		return err
	}
	return writeRecords(w, recs, false)
}

func newCmdPanelFlags() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "panel-flags",
		Short: "Flag the variants of VCF files that appear in a reference panel",
		Long: `
panel-flags reads the variants of every file and marks each one "true" in the
in_panel column if a panel record has the same chromosome, position, REF and
ALT, "false" otherwise.  The panel defaults to the first GTOOLS_PANEL entry.`,
		ArgsName: "path...",
	}
	var (
		flags vcfFlags
		panel string
	)
	flags.register(cmd)
	cmd.Flags.StringVar(&panel, "panel", "", "Panel VCF")
	cmd.Runner = cmdutil.RunnerFunc(func(e *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return errors.New("panel-flags takes at least one pathname argument")
		}
		return panelFlags(vcontext.Background(), env.OS{}, e.Stdout, argv, panel, flags)
	})
	return cmd
}

func panelFlags(ctx context.Context, e env.Accessor, w io.Writer, paths []string, panel string, flags vcfFlags) error {
	s, err := loadSettings(ctx, e)
	if err != nil {
		return err
	}
	if panel == "" {
		if len(s.PanelPaths) == 0 {
			return errors.New("panel-flags: no -panel given and GTOOLS_PANEL is empty")
		}
		panel = s.PanelPaths[0]
	}
	opts, err := flags.opts(ctx, s)
	if err != nil {
		return err
	}
	recs, err := variant.ParseVCF(ctx, paths, opts)
	if err != nil {
		return err
	}
	if _, err := variant.SetPanelFlagsFromFile(ctx, recs, panel, flags.chrom); err != nil {
		return err
	}
	return writeRecords(w, recs, true)
}

func newCmdPanelFreqs() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "panel-freqs",
		Short: "Compute variant frequencies across panel VCF files",
		Long: `
panel-freqs prints, for every variant seen in any file, the fraction of files
reporting it.  With no arguments the GTOOLS_PANEL files are used.`,
		ArgsName: "[path...]",
	}
	var flags vcfFlags
	flags.register(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(e *cmdline.Env, argv []string) error {
		return panelFreqs(vcontext.Background(), env.OS{}, e.Stdout, argv, flags)
	})
	return cmd
}

func panelFreqs(ctx context.Context, e env.Accessor, w io.Writer, paths []string, flags vcfFlags) error {
	s, err := loadSettings(ctx, e)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = s.PanelPaths
	}
	if len(paths) == 0 {
		return errors.New("panel-freqs: no files given and GTOOLS_PANEL is empty")
	}
	opts, err := flags.opts(ctx, s)
	if err != nil {
		return err
	}
	freqs, err := variant.PanelFrequencies(ctx, paths, opts)
	if err != nil {
		return err
	}
	tags := make([]string, 0, len(freqs))
	for tag := range freqs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	tw, err := newTSV(w, "#tag", "freq")
	if err != nil {
		return err
	}
	for _, tag := range tags {
		tw.WriteString(tag)
		tw.WriteString(formatFloat(freqs[tag]))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	log.Debug.Printf("panel-freqs: wrote %d tag(s)", len(tags))
	return tw.Flush()
}
