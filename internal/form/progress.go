package form

import (
	"math"

	"nestlist/internal/domain"
)

// Progress is the weighted completion score for a draft. Required fields
// carry 80% of the blend so a listing is "ready" once mandatory data is in;
// optional fields reward richer listings without blocking submission.
type Progress struct {
	Percentage         int
	RequiredPercentage int
	OptionalPercentage int
	CanSubmit          bool
}

// Score computes Progress over the field registry. Pure and cheap enough to
// run on every draft mutation.
func Score(d *domain.Draft) Progress {
	return scoreWith(d, RequiredFields, OptionalFields)
}

func scoreWith(d *domain.Draft, required, optional []Field) Progress {
	reqFilled := 0
	for _, f := range required {
		if f.Validate(d) {
			reqFilled++
		}
	}
	optFilled := 0
	for _, f := range optional {
		if f.Validate(d) {
			optFilled++
		}
	}

	reqFrac := float64(reqFilled) / float64(len(required))
	optFrac := float64(optFilled) / float64(len(optional))

	pct := math.Min(100, reqFrac*80+optFrac*20)
	return Progress{
		Percentage:         int(math.Round(pct)),
		RequiredPercentage: int(math.Round(reqFrac * 100)),
		OptionalPercentage: int(math.Round(optFrac * 100)),
		CanSubmit:          reqFilled == len(required),
	}
}
