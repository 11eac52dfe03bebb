package handlers

import "time"

type handlerOptions struct {
	now func() time.Time
}

type Option func(*handlerOptions)

// WithClock sets the clock used for "today", stats windows and ICS stamps.
func WithClock(now func() time.Time) Option {
	return func(o *handlerOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func applyOptions(opts []Option) handlerOptions {
	o := handlerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
