// Package config reads the gtools settings from the environment.
package config

import (
	"context"
	"strconv"
	"strings"

	"github.com/ascendo/LACHESIS/env"
	"github.com/ascendo/LACHESIS/interval"
	"github.com/pkg/errors"
)

// Environment variables read by Load.
const (
	// EnvChromOrder names a .fai, .sam or one-name-per-line file giving the
	// chromosome order.  Unset means natural order.
	EnvChromOrder = "GTOOLS_CHROM_ORDER"
	// EnvParallelism bounds the number of VCF files decoded at once.  Unset
	// or 0 means one job per file.
	EnvParallelism = "GTOOLS_PARALLELISM"
	// EnvPanel is a colon-separated list of default panel VCFs.
	EnvPanel = "GTOOLS_PANEL"
)

// Config holds the settings shared by every gtools command.
type Config struct {
	ChromOrderPath string
	Parallelism    int
	PanelPaths     []string
}

// Load reads the configuration from e.
func Load(e env.Accessor) (Config, error) {
	c := Config{ChromOrderPath: strings.TrimSpace(e.Getenv(EnvChromOrder))}
	if s := strings.TrimSpace(e.Getenv(EnvParallelism)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Config{}, errors.Errorf("config.Load: %s=%q is not a non-negative integer", EnvParallelism, s)
		}
		c.Parallelism = n
	}
	for _, p := range strings.Split(e.Getenv(EnvPanel), ":") {
		if p = strings.TrimSpace(p); p != "" {
			c.PanelPaths = append(c.PanelPaths, p)
		}
	}
	return c, nil
}

// ChromOrder loads the configured chromosome order, or returns nil (natural
// order) when none is configured.
func (c Config) ChromOrder(ctx context.Context) (*interval.ChromOrder, error) {
	if c.ChromOrderPath == "" {
		return nil, nil
	}
	order, err := interval.ReadChromOrder(ctx, c.ChromOrderPath)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", EnvChromOrder)
	}
	return order, nil
}
