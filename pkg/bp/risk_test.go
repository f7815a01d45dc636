package bp

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		sys, dia  int
		wantCat   Category
		wantScore int
		wantBand  Band
	}{
		{
			name: "ideal at baseline",
			sys:  100, dia: 70,
			wantCat: Ideal, wantScore: 0, wantBand: BandLow,
		},
		{
			// (120-100)/10 + (80-70)/10 = 2 + 1
			name: "ideal at ceiling",
			sys:  120, dia: 80,
			wantCat: Ideal, wantScore: 3, wantBand: BandModerate,
		},
		{
			// 3 + 1 + 2 for PreHigh
			name: "pre-high reaches high band",
			sys:  135, dia: 85,
			wantCat: PreHigh, wantScore: 6, wantBand: BandHigh,
		},
		{
			// 5 + 2 + 4 for High
			name: "high category",
			sys:  150, dia: 95,
			wantCat: High, wantScore: 11, wantBand: BandHigh,
		},
		{
			// 6 + 2 + 4
			name: "high from original suite",
			sys:  160, dia: 95,
			wantCat: High, wantScore: 12, wantBand: BandHigh,
		},
		{
			// 2 + 0 + 2: low diastolic contributes nothing, not a negative.
			name: "pre-high with low diastolic",
			sys:  125, dia: 60,
			wantCat: PreHigh, wantScore: 4, wantBand: BandModerate,
		},
		{
			name: "low values contribute nothing",
			sys:  70, dia: 40,
			wantCat: Low, wantScore: 0, wantBand: BandLow,
		},
		{
			// 1 + 0, partial tens truncate
			name: "just under moderate",
			sys:  119, dia: 79,
			wantCat: Ideal, wantScore: 1, wantBand: BandLow,
		},
		{
			// 2 + 0
			name: "exactly moderate",
			sys:  120, dia: 70,
			wantCat: Ideal, wantScore: 2, wantBand: BandModerate,
		},
		{
			// 3 + 0 + 2
			name: "just under high",
			sys:  139, dia: 60,
			wantCat: PreHigh, wantScore: 5, wantBand: BandModerate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Reading{tc.sys, tc.dia}
			if got := Classify(r); got != tc.wantCat {
				t.Errorf("Classify = %s, want %s", got, tc.wantCat)
			}
			if got := Score(r); got != tc.wantScore {
				t.Errorf("Score = %d, want %d", got, tc.wantScore)
			}
			if got := CardiovascularRisk(r); got != tc.wantBand {
				t.Errorf("CardiovascularRisk = %s, want %s", got, tc.wantBand)
			}
		})
	}
}

func TestBandFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{0, BandLow},
		{1, BandLow},
		{2, BandModerate},
		{5, BandModerate},
		{6, BandHigh},
		{13, BandHigh},
	}
	for _, tc := range tests {
		if got := bandFromScore(tc.score); got != tc.want {
			t.Errorf("bandFromScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestAssess(t *testing.T) {
	r := Reading{Systolic: 135, Diastolic: 85}
	a := Assess(r)

	want := Assessment{
		Category:           PreHigh,
		HeartRiskMessage:   "Moderate risk - Consider lifestyle adjustments.",
		CardiovascularRisk: BandHigh,
		Score:              6,
	}
	if a != want {
		t.Errorf("Assess(%+v) = %+v, want %+v", r, a, want)
	}
	if again := Assess(r); again != a {
		t.Errorf("second Assess = %+v, want %+v", again, a)
	}
}

func TestAssess_MatchesParts(t *testing.T) {
	for sys := SystolicMin; sys <= SystolicMax; sys += 7 {
		for dia := DiastolicMin; dia <= DiastolicMax; dia += 3 {
			r := Reading{sys, dia}
			a := Assess(r)
			if a.Category != Classify(r) ||
				a.CardiovascularRisk != CardiovascularRisk(r) ||
				a.HeartRiskMessage != HeartRiskMessage(a.Category) {
				t.Fatalf("Assess(%+v) = %+v disagrees with component functions", r, a)
			}
		}
	}
}

func TestBand_Names(t *testing.T) {
	tests := []struct {
		b          Band
		name, desc string
	}{
		{BandLow, "Low", "Low long-term cardiovascular risk."},
		{BandModerate, "Moderate", "Moderate long-term cardiovascular risk."},
		{BandHigh, "High", "High long-term cardiovascular risk."},
	}
	for _, tc := range tests {
		if got := tc.b.String(); got != tc.name {
			t.Errorf("String() = %q, want %q", got, tc.name)
		}
		if got := tc.b.Description(); got != tc.desc {
			t.Errorf("Description() = %q, want %q", got, tc.desc)
		}
		if parsed, err := ParseBand(tc.name); err != nil || parsed != tc.b {
			t.Errorf("ParseBand(%q) = %v, %v", tc.name, parsed, err)
		}
	}
	if _, err := ParseBand("Severe"); err == nil {
		t.Error("ParseBand(Severe): expected error")
	}
}
