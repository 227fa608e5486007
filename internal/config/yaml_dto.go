package config

// YAMLConfig mirrors the config file. Pointer fields distinguish
// "absent" from zero so defaults survive partial files.
type YAMLConfig struct {
	ScaleFactor   *float64              `yaml:"scale_factor"`
	FontPoint     *float64              `yaml:"font_point"`
	FontType      string                `yaml:"font_type"`
	StrokePoint   *float64              `yaml:"stroke_point"`
	Colors        map[string][]float64  `yaml:"colors"`
	Projection    string                `yaml:"projection"`
	NormalizeText *bool                 `yaml:"normalize_text"`
	ZoneOffsets   map[string]YAMLOffset `yaml:"zone_offsets"`
	LogLevel      string                `yaml:"log_level"`
	LogFormat     string                `yaml:"log_format"`
	Workers       *int                  `yaml:"workers"`
}

// YAMLOffset is a zone_offsets entry: the drawing position of a zone origin.
type YAMLOffset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}
