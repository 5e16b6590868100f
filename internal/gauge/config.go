package gauge

// Pointer styles the needle. Length and StrokeWidth are fractions of the
// gauge radius.
type Pointer struct {
	Length      float64
	StrokeWidth float64
	Color       string
}

// Ticks configures major divisions and minor subdivisions along the arc.
// Lengths are fractions of the arc line width.
type Ticks struct {
	Divisions    int
	DivWidth     float64
	DivLength    float64
	DivColor     string
	SubDivisions int
	SubLength    float64
	SubWidth     float64
	SubColor     string
}

// Labels are fixed value markers drawn outside the arc.
type Labels struct {
	Values         []float64
	Color          string
	FractionDigits int
}

// Zone colors the arc between Min and Max instead of the value fill.
type Zone struct {
	Color string
	Min   float64
	Max   float64
}

// Config describes one radial gauge. Only the current value changes after
// construction (and the range, when a limit is off).
type Config struct {
	Width  int
	Height int

	Angle       float64 // arc start offset as a fraction of pi
	LineWidth   float64 // fraction of the radius
	RadiusScale float64

	Pointer Pointer

	LimitMax bool
	LimitMin bool

	ColorStart       string
	ColorStop        string
	StrokeColor      string
	GenerateGradient bool
	HighDPISupport   bool

	Ticks  *Ticks
	Labels *Labels
	Zones  []Zone

	MinValue       float64
	MaxValue       float64
	AnimationSpeed float64
}

// SpeedConfig is the 0-100 mph gauge with ticks and labels.
func SpeedConfig() Config {
	return Config{
		Width:       300,
		Height:      180,
		Angle:       -0.1,
		LineWidth:   0.4,
		RadiusScale: 1,
		Pointer: Pointer{
			Length:      0.6,
			StrokeWidth: 0.035,
			Color:       "#000000",
		},
		LimitMax:         true,
		LimitMin:         true,
		ColorStart:       "#6FADCF",
		ColorStop:        "#8FC0DA",
		StrokeColor:      "#E0E0E0",
		GenerateGradient: true,
		HighDPISupport:   true,
		Ticks: &Ticks{
			Divisions:    5,
			DivWidth:     1.1,
			DivLength:    0.42,
			DivColor:     "#333333",
			SubDivisions: 4,
			SubLength:    0.32,
			SubWidth:     0.6,
			SubColor:     "#666666",
		},
		Labels: &Labels{
			Values:         []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			Color:          "#000000",
			FractionDigits: 0,
		},
		MinValue:       0,
		MaxValue:       100,
		AnimationSpeed: 32,
	}
}

// RatioConfig is the air-fuel ratio gauge (MAF x1000) with danger, warning
// and safe zones.
func RatioConfig() Config {
	return Config{
		Width:       300,
		Height:      180,
		Angle:       0.25,
		LineWidth:   0.26,
		RadiusScale: 1,
		Pointer: Pointer{
			Length:      0.52,
			StrokeWidth: 0.022,
			Color:       "#000000",
		},
		LimitMax:         false,
		LimitMin:         false,
		ColorStart:       "#6F6EA0",
		ColorStop:        "#C0C0DB",
		StrokeColor:      "#EEEEEE",
		GenerateGradient: true,
		HighDPISupport:   true,
		Zones: []Zone{
			{Color: "#F03E3E", Min: 13400, Max: 14100},
			{Color: "#FFDD00", Min: 14100, Max: 14500},
			{Color: "#30B32D", Min: 14500, Max: 14900},
			{Color: "#FFDD00", Min: 14900, Max: 15300},
			{Color: "#F03E3E", Min: 15300, Max: 16000},
		},
		MinValue:       13400,
		MaxValue:       16000,
		AnimationSpeed: 32,
	}
}
