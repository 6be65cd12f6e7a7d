package repository

type options struct {
	name     string
	capacity int
}

// Option applies a configuration option to a Table.
type Option func(*options)

// WithName sets the table name reported in errors.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithCapacity preallocates room for n keys.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
