package cmd

import (
	"context"
	"io"
	"strconv"

	"github.com/ascendo/LACHESIS/hapmatrix"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

func newCmdHapmatrix() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "hapmatrix",
		Short: "Validate and summarize a haplotype-matrix file",
		Long: `
hapmatrix reads a simulated (-format=sim) or real (-format=real) haplotype
matrix and prints one line per fragment: for sim, its offset, calls and truth;
for real, its clone interval, quality and number of called loci.`,
		ArgsName: "path",
	}
	format := cmd.Flags.String("format", "real", `Matrix format: "sim" or "real"`)
	cmd.Runner = cmdutil.RunnerFunc(func(e *cmdline.Env, argv []string) error {
		path, err := oneArg("hapmatrix", argv)
		if err != nil {
			return err
		}
		return printHapmatrix(vcontext.Background(), e.Stdout, path, *format)
	})
	return cmd
}

func printHapmatrix(ctx context.Context, w io.Writer, path, format string) error {
	switch format {
	case "sim":
		m, err := hapmatrix.ParseSim(ctx, path)
		if err != nil {
			return err
		}
		tw, err := newTSV(w, "#frag", "offset", "calls", "truth")
		if err != nil {
			return err
		}
		for i, calls := range m.Frags {
			tw.WriteUint32(uint32(i))
			tw.WriteUint32(uint32(m.Offsets[i]))
			tw.WriteString(calls)
			tw.WriteString(m.FragTruth[i].String())
			if err := tw.EndLine(); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "real":
		m, err := hapmatrix.ParseReal(ctx, path)
		if err != nil {
			return err
		}
		tw, err := newTSV(w, "#clone", "chrom", "start", "stop", "qual", "loci", "vars")
		if err != nil {
			return err
		}
		vars := cloneVarCounts(m)
		for i := 0; i < m.NFrags; i++ {
			tw.WriteUint32(uint32(i))
			writeInterval(tw, m.CloneIntervals[i])
			tw.WriteString(formatFloat(m.CloneQuals[i]))
			tw.WriteUint32(uint32(len(m.CloneCalls[i])))
			tw.WriteString(strconv.Itoa(vars[i]))
			if err := tw.EndLine(); err != nil {
				return err
			}
		}
		return tw.Flush()
	}
	return errors.Errorf("hapmatrix: unknown format %q", format)
}

// cloneVarCounts returns the number of VAR lines calling each clone.
func cloneVarCounts(m hapmatrix.RealMatrix) []int {
	counts := make([]int, m.NFrags)
	for _, calls := range m.VarCalls {
		for _, c := range calls {
			counts[c.Clone]++
		}
	}
	return counts
}
