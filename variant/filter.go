package variant

// Filter selects records while a VCF is decoded; rejected lines never become
// Records.  Every set field must match (logical AND).  The zero Filter admits
// everything.
type Filter struct {
	// Chrom, if nonempty, admits only that chromosome.
	Chrom string
	// Genotype, unless GenotypeUnset, admits only that class.
	Genotype Genotype
	// InDB, unless Unknown, admits only records with that dbSNP membership.
	InDB Tribool
}

// Admits reports whether r passes f.
func (f Filter) Admits(r *Record) bool {
	return (f.Chrom == "" || f.Chrom == r.Chrom) &&
		(f.Genotype == GenotypeUnset || f.Genotype == r.Genotype) &&
		(f.InDB == Unknown || f.InDB == r.InDB)
}
