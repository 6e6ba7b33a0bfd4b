package asset

// CatalogBuilderOption is a functional option for NewCatalog.
type CatalogBuilderOption func(c *catalog)

// WithWorkers sets how many files decode at once. Values below 1 are ignored.
func WithWorkers(n int) CatalogBuilderOption {
	return func(c *catalog) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithVerbose logs every texture that loads.
func WithVerbose(verbose bool) CatalogBuilderOption {
	return func(c *catalog) {
		c.verbose = verbose
	}
}
