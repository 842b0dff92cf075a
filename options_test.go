package starview

import "testing"

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		check func(t *testing.T, o options)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, o options) {
				if o.dustCount != DefaultDustCount {
					t.Errorf("dustCount = %d, want %d", o.dustCount, DefaultDustCount)
				}
				if o.hudFont != "bold" {
					t.Errorf("hudFont = %q, want bold", o.hudFont)
				}
				if o.showCallsigns || o.showHeadings || o.showDust {
					t.Error("overlays should default off")
				}
			},
		},
		{
			name: "overlays on",
			opts: []Option{WithCallsigns(true), WithHeadings(true), WithSpaceDust(true)},
			check: func(t *testing.T, o options) {
				if !o.showCallsigns || !o.showHeadings || !o.showDust {
					t.Error("overlays did not enable")
				}
			},
		},
		{
			name: "dust count",
			opts: []Option{WithDustCount(256)},
			check: func(t *testing.T, o options) {
				if o.dustCount != 256 {
					t.Errorf("dustCount = %d, want 256", o.dustCount)
				}
			},
		},
		{
			name: "invalid dust count keeps default",
			opts: []Option{WithDustCount(-5)},
			check: func(t *testing.T, o options) {
				if o.dustCount != DefaultDustCount {
					t.Errorf("dustCount = %d, want %d", o.dustCount, DefaultDustCount)
				}
			},
		},
		{
			name: "hud font",
			opts: []Option{WithHUDFont("mono")},
			check: func(t *testing.T, o options) {
				if o.hudFont != "mono" {
					t.Errorf("hudFont = %q, want mono", o.hudFont)
				}
			},
		},
		{
			name: "empty hud font keeps default",
			opts: []Option{WithHUDFont("")},
			check: func(t *testing.T, o options) {
				if o.hudFont != "bold" {
					t.Errorf("hudFont = %q, want bold", o.hudFont)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			tt.check(t, o)
		})
	}
}
