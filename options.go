package starview

// Option configures a Viewport during creation.
// Use functional options to customize Viewport behavior.
//
// Example:
//
//	vp, err := starview.New(provider, scene, hooks,
//		starview.WithCallsigns(true),
//		starview.WithSpaceDust(true),
//	)
type Option func(*options)

// options holds optional configuration for Viewport creation.
type options struct {
	showCallsigns bool
	showHeadings  bool
	showDust      bool
	dustCount     int
	hudFont       string
}

func defaultOptions() options {
	return options{
		dustCount: DefaultDustCount,
		hudFont:   "bold",
	}
}

// WithCallsigns enables the overhead name labels.
func WithCallsigns(on bool) Option {
	return func(o *options) { o.showCallsigns = on }
}

// WithHeadings enables the compass heading ring around the player
// ship.
func WithHeadings(on bool) Option {
	return func(o *options) { o.showHeadings = on }
}

// WithSpaceDust enables the drifting dust streaks that give the
// camera a sense of motion.
func WithSpaceDust(on bool) Option {
	return func(o *options) { o.showDust = on }
}

// WithDustCount sets the number of dust particles. Values below one
// keep DefaultDustCount.
func WithDustCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.dustCount = n
		}
	}
}

// WithHUDFont sets the font name passed to RenderTarget.DrawText for
// all HUD text.
func WithHUDFont(name string) Option {
	return func(o *options) {
		if name != "" {
			o.hudFont = name
		}
	}
}
