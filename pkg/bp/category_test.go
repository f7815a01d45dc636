package bp

import (
	"encoding/json"
	"testing"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		sys, dia int
		want     Category
	}{
		{70, 40, Low},
		{90, 60, Low},
		{91, 61, Ideal},
		{120, 80, Ideal},
		{121, 81, PreHigh},
		{139, 89, PreHigh},
		{140, 90, High},
		{190, 100, High},
		{119, 79, Ideal},
		{121, 79, PreHigh},
		{150, 95, High},
	}
	for _, tc := range tests {
		if got := Classify(Reading{tc.sys, tc.dia}); got != tc.want {
			t.Errorf("Classify(%d,%d) = %s, want %s", tc.sys, tc.dia, got, tc.want)
		}
	}
}

func TestClassify_AsymmetricEscalation(t *testing.T) {
	tests := []struct {
		name     string
		sys, dia int
		want     Category
	}{
		{"diastolic alone is high", 100, 95, High},
		{"systolic alone is high", 160, 75, High},
		{"diastolic lifts low systolic to ideal", 85, 65, Ideal},
		{"systolic lifts low diastolic to pre-high", 130, 50, PreHigh},
		{"diastolic lifts ideal systolic to pre-high", 110, 85, PreHigh},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(Reading{tc.sys, tc.dia}); got != tc.want {
				t.Errorf("Classify(%d,%d) = %s, want %s", tc.sys, tc.dia, got, tc.want)
			}
		})
	}
}

// Raising either value with the other held fixed never lowers severity.
func TestClassify_Monotonic(t *testing.T) {
	for sys := SystolicMin; sys <= SystolicMax; sys++ {
		for dia := DiastolicMin; dia <= DiastolicMax; dia++ {
			cur := Classify(Reading{sys, dia})
			if cur < Low || cur > High {
				t.Fatalf("Classify(%d,%d) = %d, not a category", sys, dia, int(cur))
			}
			if sys < SystolicMax {
				if next := Classify(Reading{sys + 1, dia}); next < cur {
					t.Fatalf("Classify(%d,%d)=%s > Classify(%d,%d)=%s", sys, dia, cur, sys+1, dia, next)
				}
			}
			if dia < DiastolicMax {
				if next := Classify(Reading{sys, dia + 1}); next < cur {
					t.Fatalf("Classify(%d,%d)=%s > Classify(%d,%d)=%s", sys, dia, cur, sys, dia+1, next)
				}
			}
		}
	}
}

func TestHeartRiskMessage(t *testing.T) {
	tests := []struct {
		sys, dia int
		want     string
	}{
		{90, 60, "Low risk - Maintain hydration and regular meals."},
		{110, 70, "Healthy - Keep up the good work!"},
		{130, 85, "Moderate risk - Consider lifestyle adjustments."},
		{160, 100, "High risk - Consult your doctor."},
	}
	for _, tc := range tests {
		if got := HeartRiskMessage(Classify(Reading{tc.sys, tc.dia})); got != tc.want {
			t.Errorf("HeartRiskMessage for (%d,%d) = %q, want %q", tc.sys, tc.dia, got, tc.want)
		}
	}
	if got := HeartRiskMessage(Category(42)); got != "" {
		t.Errorf("HeartRiskMessage(42) = %q, want empty", got)
	}
}

func TestCategory_Names(t *testing.T) {
	tests := []struct {
		c           Category
		name, label string
	}{
		{Low, "Low", "Low Blood Pressure"},
		{Ideal, "Ideal", "Ideal Blood Pressure"},
		{PreHigh, "PreHigh", "Pre-High Blood Pressure"},
		{High, "High", "High Blood Pressure"},
	}
	for _, tc := range tests {
		if got := tc.c.String(); got != tc.name {
			t.Errorf("String() = %q, want %q", got, tc.name)
		}
		if got := tc.c.DisplayName(); got != tc.label {
			t.Errorf("DisplayName() = %q, want %q", got, tc.label)
		}
		parsed, err := ParseCategory(tc.name)
		if err != nil || parsed != tc.c {
			t.Errorf("ParseCategory(%q) = %v, %v", tc.name, parsed, err)
		}
	}
	if _, err := ParseCategory("Elevated"); err == nil {
		t.Error("ParseCategory(Elevated): expected error")
	}
	if got := Category(7).String(); got != "Category(7)" {
		t.Errorf("String() of unknown = %q", got)
	}
}

func TestCeiling(t *testing.T) {
	sys, dia, ok := Ceiling(PreHigh)
	if !ok || sys != 139 || dia != 89 {
		t.Errorf("Ceiling(PreHigh) = %d, %d, %v", sys, dia, ok)
	}
	if _, _, ok := Ceiling(High); ok {
		t.Error("Ceiling(High): expected ok=false")
	}
}

func TestCategory_JSON(t *testing.T) {
	data, err := json.Marshal(PreHigh)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"PreHigh"` {
		t.Errorf("Marshal = %s, want \"PreHigh\"", data)
	}

	var c Category
	if err := json.Unmarshal([]byte(`"High"`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c != High {
		t.Errorf("Unmarshal = %s, want High", c)
	}
	if err := json.Unmarshal([]byte(`3`), &c); err == nil {
		t.Error("Unmarshal(3): expected error")
	}
}
