package dataset

// Affinity is a censored nanomolar value assigned to a categorical call.
type Affinity struct {
	Value      float64
	Inequality Inequality
}

// QualitativeAffinities maps IEDB qualitative measure categories to
// censored affinities. "Positive" is also the affinity assigned to every
// mass-spec hit. Categories outside this table yield records with a
// missing value, removed by the final cleaning step.
var QualitativeAffinities = map[string]Affinity{
	"Negative":              {Value: 5000.0, Inequality: Greater},
	"Positive":              {Value: 500.0, Inequality: Less},
	"Positive-High":         {Value: 100.0, Inequality: Less},
	"Positive-Intermediate": {Value: 1000.0, Inequality: Less},
	"Positive-Low":          {Value: 5000.0, Inequality: Less},
}

// PositiveAffinity returns the affinity recorded for mass-spec hits and
// other unqualified positive calls.
func PositiveAffinity() Affinity {
	return QualitativeAffinities["Positive"]
}
