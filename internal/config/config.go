// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Sky      SkyConfig      `yaml:"sky"`
	Ground   GroundConfig   `yaml:"ground"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	PixelRatioCap float32 `yaml:"pixel_ratio_cap"` // Max drawable/window scale used for the scene target
	Shadows       bool    `yaml:"shadows"`
	Exposure      float32 `yaml:"exposure"` // Tone-mapping exposure
	FieldOfView   float32 `yaml:"fov"`      // Vertical FOV in degrees
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// CameraConfig holds the camera rig settings.
type CameraConfig struct {
	Mode        string            `yaml:"mode"` // orbit, drone or first_person
	Orbit       OrbitConfig       `yaml:"orbit"`
	Drone       DroneConfig       `yaml:"drone"`
	FirstPerson FirstPersonConfig `yaml:"first_person"`
}

// OrbitConfig holds orbit controller settings.
type OrbitConfig struct {
	Target        [3]float32 `yaml:"target"`
	Distance      float32    `yaml:"distance"`
	Polar         float32    `yaml:"polar"`   // Radians from the up axis
	Azimuth       float32    `yaml:"azimuth"` // Radians around the up axis
	MinDistance   float32    `yaml:"min_distance"`
	MaxDistance   float32    `yaml:"max_distance"`
	MinPolar      float32    `yaml:"min_polar"`
	MaxPolar      float32    `yaml:"max_polar"`
	RotateSpeed   float32    `yaml:"rotate_speed"` // Radians per pixel of drag
	ZoomSpeed     float32    `yaml:"zoom_speed"`   // Radius fraction per wheel step
	PanSpeed      float32    `yaml:"pan_speed"`
	DampingFactor float32    `yaml:"damping_factor"`
}

// DroneConfig holds free-fly controller settings.
type DroneConfig struct {
	Position        [3]float32 `yaml:"position"`
	Yaw             float32    `yaml:"yaw"`
	Pitch           float32    `yaml:"pitch"`
	MinHeight       float32    `yaml:"min_height"`
	MaxHeight       float32    `yaml:"max_height"`
	FlySpeed        float32    `yaml:"fly_speed"`
	Turbo           float32    `yaml:"turbo"`
	LookSensitivity float32    `yaml:"look_sensitivity"`
}

// FirstPersonConfig holds walking controller settings.
type FirstPersonConfig struct {
	Position        [3]float32 `yaml:"position"`
	Yaw             float32    `yaml:"yaw"`
	EyeHeight       float32    `yaml:"eye_height"`
	WalkSpeed       float32    `yaml:"walk_speed"`
	JumpSpeed       float32    `yaml:"jump_speed"`
	Gravity         float32    `yaml:"gravity"`
	LookSensitivity float32    `yaml:"look_sensitivity"`
}

// SkyConfig holds the sky clock settings. Angles are in degrees.
type SkyConfig struct {
	Hour            float64 `yaml:"hour"`
	AutoAdvance     bool    `yaml:"auto_advance"`
	Speed           float64 `yaml:"speed"` // Hours per real second
	Latitude        float64 `yaml:"latitude"`
	Declination     float64 `yaml:"declination"`
	OrbitRadius     float64 `yaml:"orbit_radius"`
	MoonPhaseOffset float64 `yaml:"moon_phase_offset"`
	MoonTiltDelta   float64 `yaml:"moon_tilt_delta"`
	TwilightUpper   float64 `yaml:"twilight_upper"`
	TwilightLower   float64 `yaml:"twilight_lower"`
	StarThreshold   float64 `yaml:"star_threshold"`
	SunIntensity    float64 `yaml:"sun_intensity"`
	MoonIntensity   float64 `yaml:"moon_intensity"`
}

// GroundConfig holds the procedural ground settings.
type GroundConfig struct {
	Size        float32 `yaml:"size"`
	Segments    int     `yaml:"segments"`
	Amplitude1  float32 `yaml:"amplitude1"`
	Frequency1  float32 `yaml:"frequency1"`
	Amplitude2  float32 `yaml:"amplitude2"`
	Frequency2  float32 `yaml:"frequency2"`
	UVRepeat    float32 `yaml:"uv_repeat"`
	TextureSize int     `yaml:"texture_size"`
	ColorMap    string  `yaml:"color_map"`
	DisplaceMap string  `yaml:"displacement_map"`
	NormalMap   string  `yaml:"normal_map"`
	NormalScale float32 `yaml:"normal_scale"`
}

// AssetsConfig holds asset search settings.
type AssetsConfig struct {
	Roots []string `yaml:"roots"` // Searched last to first
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			PixelRatioCap: 2.0,
			Shadows:       true,
			Exposure:      1.0,
			FieldOfView:   60,
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Mode: "orbit",
			Orbit: OrbitConfig{
				Target:        [3]float32{0, 0, 0},
				Distance:      60,
				Polar:         1.1,
				Azimuth:       0.6,
				MinDistance:   5,
				MaxDistance:   400,
				MinPolar:      0.05,
				MaxPolar:      1.52,
				RotateSpeed:   0.005,
				ZoomSpeed:     0.1,
				PanSpeed:      0.002,
				DampingFactor: 0.15,
			},
			Drone: DroneConfig{
				Position:        [3]float32{0, 25, 40},
				Yaw:             0,
				Pitch:           -0.3,
				MinHeight:       2,
				MaxHeight:       120,
				FlySpeed:        20,
				Turbo:           3,
				LookSensitivity: 0.003,
			},
			FirstPerson: FirstPersonConfig{
				Position:        [3]float32{0, 0, 10},
				Yaw:             0,
				EyeHeight:       1.7,
				WalkSpeed:       5,
				JumpSpeed:       6,
				Gravity:         18,
				LookSensitivity: 0.002,
			},
		},
		Sky: SkyConfig{
			Hour:            10,
			AutoAdvance:     false,
			Speed:           0.5,
			Latitude:        35,
			Declination:     10,
			OrbitRadius:     400,
			MoonPhaseOffset: 180,
			MoonTiltDelta:   5,
			TwilightUpper:   -2,
			TwilightLower:   -12,
			StarThreshold:   0.1,
			SunIntensity:    3.0,
			MoonIntensity:   0.35,
		},
		Ground: GroundConfig{
			Size:        400,
			Segments:    128,
			Amplitude1:  1.2,
			Frequency1:  0.05,
			Amplitude2:  0.4,
			Frequency2:  0.17,
			UVRepeat:    40,
			TextureSize: 512,
			ColorMap:    "sand_color.jpg",
			DisplaceMap: "sand_disp.png",
			NormalMap:   "sand_normal.png",
			NormalScale: 2.0,
		},
		Assets: AssetsConfig{
			Roots: []string{"assets"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate repairs inconsistent values in place. Nothing is rejected:
// swapped bounds are reordered and non-positive sizes fall back to defaults.
func (c *Config) Validate() {
	def := Default()

	o := &c.Camera.Orbit
	if o.MinDistance > o.MaxDistance {
		o.MinDistance, o.MaxDistance = o.MaxDistance, o.MinDistance
	}
	if o.MinPolar > o.MaxPolar {
		o.MinPolar, o.MaxPolar = o.MaxPolar, o.MinPolar
	}

	d := &c.Camera.Drone
	if d.MinHeight > d.MaxHeight {
		d.MinHeight, d.MaxHeight = d.MaxHeight, d.MinHeight
	}
	if d.Turbo < 1 {
		d.Turbo = 1
	}

	if c.Sky.TwilightLower > c.Sky.TwilightUpper {
		c.Sky.TwilightLower, c.Sky.TwilightUpper = c.Sky.TwilightUpper, c.Sky.TwilightLower
	}
	if c.Sky.Speed < 0 {
		c.Sky.Speed = 0
	}

	if c.Graphics.PixelRatioCap <= 0 {
		c.Graphics.PixelRatioCap = def.Graphics.PixelRatioCap
	}
	if c.Graphics.Exposure <= 0 {
		c.Graphics.Exposure = def.Graphics.Exposure
	}
	if c.Ground.Segments < 1 {
		c.Ground.Segments = def.Ground.Segments
	}
	if c.Ground.TextureSize < 8 {
		c.Ground.TextureSize = def.Ground.TextureSize
	}
}
