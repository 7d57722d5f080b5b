package stage

// File is the on-disk catalog format. JSON is the canonical encoding; since
// JSON is valid YAML, hand-written YAML catalogs load as well.
type File struct {
	Stages []Record `json:"stages" yaml:"stages" jsonschema:"required,minItems=1"`
}

// Record is one stage in a catalog file.
type Record struct {
	StageNumber int              `json:"stageNumber" yaml:"stageNumber" jsonschema:"required,minimum=1"`
	Obstacles   []ObstacleRecord `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
	IceBlocks   []ObstacleRecord `json:"iceBlocks,omitempty" yaml:"iceBlocks,omitempty" jsonschema:"description=Legacy name for obstacles"`
	MinSpeed    float64          `json:"minSpeed,omitempty" yaml:"minSpeed,omitempty" jsonschema:"minimum=0"`
	MaxSpeed    float64          `json:"maxSpeed,omitempty" yaml:"maxSpeed,omitempty" jsonschema:"minimum=0"`
}

// ObstacleRecord is one ice block in a catalog file.
type ObstacleRecord struct {
	Direction string  `json:"direction" yaml:"direction" jsonschema:"required,enum=left,enum=right,enum=up,enum=down"`
	Speed     float64 `json:"speed" yaml:"speed" jsonschema:"required,exclusiveMinimum=0"`
	Pattern   string  `json:"pattern,omitempty" yaml:"pattern,omitempty" jsonschema:"enum=linear,enum=circular,enum=triangular,enum=rectangular"`
}

func (r Record) definition() Definition {
	records := r.Obstacles
	if len(records) == 0 {
		records = r.IceBlocks
	}

	specs := make([]ObstacleSpec, len(records))
	for i, o := range records {
		specs[i] = ObstacleSpec{
			Direction: Direction(o.Direction),
			Speed:     o.Speed,
			Pattern:   Pattern(o.Pattern),
		}
	}

	def := NewDefinition(r.StageNumber, specs...)
	def.MinSpeed = r.MinSpeed
	def.MaxSpeed = r.MaxSpeed
	return def
}

func recordOf(d Definition) Record {
	r := Record{
		StageNumber: d.Number,
		Obstacles:   make([]ObstacleRecord, 0, len(d.obstacles)),
		MinSpeed:    d.MinSpeed,
		MaxSpeed:    d.MaxSpeed,
	}
	for i, o := range d.obstacles {
		rec := ObstacleRecord{Direction: string(o.Direction), Speed: o.Speed}
		if o.Pattern != PatternForIndex(i) {
			rec.Pattern = string(o.Pattern)
		}
		r.Obstacles = append(r.Obstacles, rec)
	}
	return r
}
