package bp

import (
	"encoding/json"
	"fmt"
)

// Band is the long-term cardiovascular risk level derived from Score.
type Band int

const (
	BandLow Band = iota
	BandModerate
	BandHigh
)

// Score thresholds that map to a band.
const (
	ThresholdModerate = 2
	ThresholdHigh     = 6
)

// Category weights added on top of the per-field contributions.
const (
	weightPreHigh = 2
	weightHigh    = 4
)

var bandNames = [...]string{
	BandLow:      "Low",
	BandModerate: "Moderate",
	BandHigh:     "High",
}

var bandDescriptions = [...]string{
	BandLow:      "Low long-term cardiovascular risk.",
	BandModerate: "Moderate long-term cardiovascular risk.",
	BandHigh:     "High long-term cardiovascular risk.",
}

// Assessment is the full evaluation of one reading. It is a value type and
// is recomputed on every call to Assess.
type Assessment struct {
	Category           Category `json:"category"`
	HeartRiskMessage   string   `json:"heart_risk"`
	CardiovascularRisk Band     `json:"cardiovascular_risk"`
	Score              int      `json:"score"`
}

// Score returns the integer cardiovascular score of r.
// Each field contributes one point per full 10 mmHg above its baseline
// (100 systolic, 70 diastolic); values under the baseline contribute nothing.
func Score(r Reading) int {
	score := max(0, (r.Systolic-100)/10) + max(0, (r.Diastolic-70)/10)

	switch Classify(r) {
	case PreHigh:
		score += weightPreHigh
	case High:
		score += weightHigh
	}
	return score
}

// CardiovascularRisk returns the band for r's score.
func CardiovascularRisk(r Reading) Band {
	return bandFromScore(Score(r))
}

// Assess classifies r and derives both risk outputs. It does not validate.
func Assess(r Reading) Assessment {
	cat := Classify(r)
	score := Score(r)
	return Assessment{
		Category:           cat,
		HeartRiskMessage:   HeartRiskMessage(cat),
		CardiovascularRisk: bandFromScore(score),
		Score:              score,
	}
}

// bandFromScore maps a numeric score to a band.
func bandFromScore(score int) Band {
	switch {
	case score >= ThresholdHigh:
		return BandHigh
	case score >= ThresholdModerate:
		return BandModerate
	default:
		return BandLow
	}
}

// Bands returns every band from lowest to highest.
func Bands() []Band {
	return []Band{BandLow, BandModerate, BandHigh}
}

func (b Band) String() string {
	if !b.valid() {
		return fmt.Sprintf("Band(%d)", int(b))
	}
	return bandNames[b]
}

// Description returns the sentence shown to the user, e.g.
// "Moderate long-term cardiovascular risk.".
func (b Band) Description() string {
	if !b.valid() {
		return ""
	}
	return bandDescriptions[b]
}

func (b Band) valid() bool {
	return b >= BandLow && b <= BandHigh
}

// ParseBand is the inverse of Band.String.
func ParseBand(s string) (Band, error) {
	for i, name := range bandNames {
		if name == s {
			return Band(i), nil
		}
	}
	return 0, fmt.Errorf("bp: unknown band %q", s)
}

func (b Band) MarshalJSON() ([]byte, error) {
	if !b.valid() {
		return nil, fmt.Errorf("bp: cannot marshal %s", b)
	}
	return json.Marshal(b.String())
}

func (b *Band) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("bp: band must be a string: %w", err)
	}
	parsed, err := ParseBand(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
