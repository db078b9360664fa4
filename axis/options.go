package axis

// Option configures the optional, variant-common axis parameters: a
// human-readable Label, and whether under/overflow bins flank the real
// ones. UOflow defaults to true for variants that support it at all;
// passing it explicitly to Circular or Category is a domain error, since
// neither variant has phantom bins to turn on or off.
type Option func(*options)

type options struct {
	label      string
	uoflowSet  bool
	uoflow     bool
}

func Label(label string) Option {
	return func(o *options) { o.label = label }
}

func UOflow(on bool) Option {
	return func(o *options) {
		o.uoflowSet = true
		o.uoflow = on
	}
}

func applyOptions(defaultUOflow bool, opts ...Option) options {
	o := options{uoflow: defaultUOflow}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
