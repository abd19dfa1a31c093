// gtools reads interval, copy-number, variant and haplotype-matrix text files
// and prints them in normalized tab-separated form.  Run "gtools help" for the
// list of subcommands.
//
// Settings shared by all subcommands come from the environment:
//
//   GTOOLS_CHROM_ORDER  .fai, .sam or name-list file giving chromosome order
//   GTOOLS_PARALLELISM  max VCF files decoded at once (0 = one per file)
//   GTOOLS_PANEL        colon-separated default panel VCFs
package main

import "github.com/ascendo/LACHESIS/cmd/gtools/cmd"

func main() {
	cmd.Run()
}
