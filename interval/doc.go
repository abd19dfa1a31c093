/*Package interval implements the genomic interval model and the
  merge-and-window pipeline used for BED/BEDgraph input.

  All coordinates are zero-based and half-open, [Start, Stop), exactly as in
  BED files.  Two intervals on one chromosome are merged when they overlap or
  abut: [10, 20) and [20, 30) become [10, 30), while [10, 20) and [21, 30)
  stay separate.  It assumes every position fits in a PosType, which is
  currently defined as int32 since that's what BAM files are limited to.

  Chromosomes are ordered by a ChromOrder.  A nil *ChromOrder means natural
  order, in which chr2 sorts before chr10.
*/
package interval
