package match

// Config defines matching-related settings. Tables left empty keep the
// built-in defaults; they are read once at engine construction and never
// mutated afterwards.
type Config struct {
	Weights        Weights             `json:"weights"`
	MarketBaseline int64               `json:"market_baseline"`
	BasePrices     map[string]int64    `json:"base_prices"`
	RelatedTable   map[string][]string `json:"related_specialties"`
	SymptomTable   map[string][]string `json:"symptom_specialties"`
	MaxParallelism int                 `json:"max_parallelism"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	zero := Weights{}
	if c.Weights == zero {
		c.Weights = DefaultWeights()
	}
	if c.MarketBaseline <= 0 {
		c.MarketBaseline = 35000
	}
}
